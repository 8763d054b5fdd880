package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/futureself/internal/ai"
	"github.com/Veraticus/futureself/internal/config"
	"github.com/Veraticus/futureself/internal/service"
	"github.com/Veraticus/futureself/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// createAIService builds the assistant service from the Azure OpenAI settings
// in config. All assistant commands share it.
func createAIService() (service.AIService, error) {
	client, err := ai.NewAzureClient(ai.AzureConfig{
		Endpoint:   viper.GetString("azure.endpoint"),
		APIKey:     viper.GetString("azure.api_key"),
		Deployment: viper.GetString("azure.deployment"),
		APIVersion: viper.GetString("azure.api_version"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}

	return ai.NewService(client, nil), nil
}
