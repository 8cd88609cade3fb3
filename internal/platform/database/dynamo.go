package database

import (
	"fmt"

	"github.com/pay-theory/dynamorm"
	"github.com/pay-theory/dynamorm/pkg/core"
	"github.com/pay-theory/dynamorm/pkg/session"

	"github.com/davelara/shopper-cart/internal/platform/config"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

// Connect opens a DynamORM session against DynamoDB. With a non-empty
// endpoint (dynamodb-local) the tables for the given models are created on
// first use.
func Connect(cfg config.DynamoConfig, models ...interface{}) (core.ExtendedDB, error) {
	db, err := dynamorm.New(session.Config{
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open dynamodb session: %w", err)
	}

	if cfg.Endpoint != "" && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure tables: %w", err)
		}
	}

	logger.Info("Connected to DynamoDB (region %s)", cfg.Region)
	return db, nil
}
