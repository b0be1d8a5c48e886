package configuration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/auth"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/db"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/handler"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/hub"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/repo"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Container struct {
	AuthHandler    handler.AuthHandler
	UserHandler    handler.UserHandler
	MessageHandler handler.MessageHandler
	UserService    service.UserService
	Hub            *hub.Hub
	Config         Config
	Logger         *zap.Logger

	// private - for cleanup
	mongoClient *mongo.Database
}

func BuildContainer(configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	con, err := db.OpenConnection(config.Mongo.Uri, config.Mongo.Database)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.Server.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	userStore := db.NewRepository[model.User](con, config.Mongo.UsersCollection)
	contactStore := db.NewRepository[model.Contact](con, config.Mongo.ContactsCollection)
	messageStore := db.NewRepository[model.Message](con, config.Mongo.MessagesCollection)

	userRepo := repo.NewUserRepository(con, userStore)
	contactRepo := repo.NewContactRepository(con, contactStore, logger)
	messageRepo := repo.NewMessageRepository(con, messageStore, logger)

	presence := hub.NewPresence()
	h := hub.NewHub(presence, logger, config.Server.AllowedOrigins)

	googleVerifier := auth.NewGoogleVerifier(config.Auth.GoogleClientID)

	authService := service.NewAuthService(userRepo, googleVerifier, config.Auth.JWTSecret, logger)
	userService := service.NewUserService(userRepo)
	contactService := service.NewContactService(contactRepo, userRepo, logger)
	messageService := service.NewMessageService(messageRepo, contactRepo, h, h, logger)

	return &Container{
		AuthHandler:    handler.NewAuthHandler(authService),
		UserHandler:    handler.NewUserHandler(userService, contactService, config.Server.UploadDir, logger),
		MessageHandler: handler.NewMessageHandler(messageService, config.Server.UploadDir, logger),
		UserService:    userService,
		Hub:            h,
		Config:         *config,
		Logger:         logger,
		mongoClient:    con,
	}, nil
}

// Close gracefully shuts down all connections.
func (c *Container) Close() error {
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	if c.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoClient.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}
