package configuration

import (
	"encoding/json"
	"os"
)

type MongoConfig struct {
	Uri                string `json:"uri"`
	Database           string `json:"database"`
	UsersCollection    string `json:"usersCollection"`
	ContactsCollection string `json:"contactsCollection"`
	MessagesCollection string `json:"messagesCollection"`
}

type ServerConfig struct {
	AppPort        int      `json:"app_port"`
	SocketPort     int      `json:"socket_port"`
	SocketRoute    string   `json:"socket_route"`
	AllowedOrigins []string `json:"allowed_origins"`
	UploadDir      string   `json:"upload_dir"`
}

type AuthConfig struct {
	JWTSecret      string `json:"jwt_secret"`
	GoogleClientID string `json:"google_client_id"`
}

type Config struct {
	Mongo  MongoConfig  `json:"mongo"`
	Server ServerConfig `json:"server"`
	Auth   AuthConfig   `json:"auth"`
}

// LoadConfig reads the JSON config file and applies environment
// overrides for the values that should not live on disk.
func LoadConfig(configPath string) (*Config, error) {
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(file, &config)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MONGO_URI"); v != "" {
		config.Mongo.Uri = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		config.Auth.GoogleClientID = v
	}

	if config.Server.SocketRoute == "" {
		config.Server.SocketRoute = "ws"
	}
	if config.Server.UploadDir == "" {
		config.Server.UploadDir = "uploads"
	}

	return &config, nil
}
