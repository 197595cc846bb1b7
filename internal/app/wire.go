//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"audioscribe/internal/api/server"
	"audioscribe/internal/app/repository/sqldb"
	"audioscribe/internal/config"
)

// InitializeServer builds the HTTP API with all of its dependencies
func InitializeServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(serverSet)
	return &server.Server{}, nil, nil
}

// InitializeStore opens the record store for the maintenance commands
func InitializeStore(ctx context.Context, cfg *config.Config) (*sqldb.DB, func(), error) {
	wire.Build(OpenDatabase, provideStore)
	return &sqldb.DB{}, nil, nil
}
