package main

import (
	"log"
	"os"

	approuters "github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/app_routers"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/configuration"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	container, err := configuration.BuildContainer(configPath)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// Ensure cleanup on shutdown
	defer container.Close()

	approuters.StartServer(container)
}
