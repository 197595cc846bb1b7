package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/server"
	v1routes "audioscribe/internal/api/v1/routes"
	"audioscribe/internal/api/v1/services"
	"audioscribe/internal/app/api"
	"audioscribe/internal/app/api/openai"
	"audioscribe/internal/app/api/openai/whisper"
	"audioscribe/internal/app/auth"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/plans"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/repository/pg"
	"audioscribe/internal/app/repository/sqldb"
	"audioscribe/internal/app/repository/sqlite"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/config"
)

// OpenDatabase opens the configured database. The cleanup closes the pool.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = pg.Open(ctx, cfg.Database.URL)
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.Database.URL)
	default:
		err = fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

func provideStore(db *sql.DB, cfg *config.Config) (*sqldb.DB, error) {
	dialect, err := sqldb.DialectFor(cfg.Database.DriverName())
	if err != nil {
		return nil, err
	}
	return sqldb.New(db, dialect), nil
}

func provideBlobStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.BlobStore, error) {
	if cfg.Storage.Backend == config.StorageMemory {
		logger.Warn("using in-memory blob storage, uploads are lost on restart")
		return storage.NewMemoryStore(cfg.Storage.PublicBaseURL), nil
	}
	return storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		UseSSL:        cfg.Storage.UseSSL,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
}

// provideRemoteTranscriber with openai's remote service conversion
func provideRemoteTranscriber(cfg *config.Config) (api.Transcriber, error) {
	client, err := openai.NewClient(openai.ClientConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return whisper.NewRemoteTranscriber(client, cfg.OpenAI.Model), nil
}

func providePlans(cfg *config.Config) (*plans.Registry, error) {
	return plans.Load(cfg.PlansFile)
}

func provideAuthenticator(cfg *config.Config) (*auth.Authenticator, error) {
	return auth.NewAuthenticator(cfg.Auth.JWTSecret)
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Addr:               cfg.Addr(),
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        2 * cfg.HTTP.ReadTimeout,
		MaxMultipartMemory: cfg.MaxUploadMemory,
		Environment:        cfg.Env,
	}
}

var storeSet = wire.NewSet(
	OpenDatabase,
	provideStore,
	wire.Bind(new(repository.Store), new(*sqldb.DB)),
	wire.Bind(new(repository.ProfileDAO), new(*sqldb.DB)),
)

var serverSet = wire.NewSet(
	storeSet,
	provideBlobStore,
	provideRemoteTranscriber,
	providePlans,
	provideAuthenticator,
	wire.Bind(new(middleware.TokenVerifier), new(*auth.Authenticator)),
	metrics.New,
	services.NewUploadService,
	services.NewTranscriptionService,
	services.NewProfileService,
	wire.Struct(new(v1routes.ServiceContainer), "*"),
	provideServerConfig,
	server.NewServer,
)
