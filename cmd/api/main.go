package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/config"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/handler"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/usecase"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/auth"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/logger"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/mailer"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/validator"
)

const serviceName = "bookmark-keeper-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(serviceName, cfg.PrettyLogging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo, bookmarkRepo, resetTokenRepo, disconnect := buildRepositories(ctx, &log, cfg)
	defer disconnect()

	var sender mailer.Sender
	if mailer.Configured() {
		sender = mailer.NewMailer(&log)
	} else {
		sender = mailer.NewLogMailer(&log)
	}

	valid, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	tokenUsecase := usecase.NewTokenUsecase(userRepo, jwtAuth, cfg)
	authUsecase := usecase.NewAuthUsecase(userRepo, tokenUsecase)
	userUsecase := usecase.NewUserUsecase(userRepo)
	bookmarkUsecase := usecase.NewBookmarkUsecase(bookmarkRepo)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, resetTokenRepo, jwtAuth, sender, cfg)

	router := handler.NewRouter(
		handler.NewAuthHandler(authUsecase, passwordResetUsecase, valid, &log),
		handler.NewUserHandler(userUsecase, valid, &log),
		handler.NewBookmarkHandler(bookmarkUsecase, valid, &log),
		tokenUsecase,
		&log,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Str("storage", cfg.Storage).Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildRepositories constructs the repository set for the configured storage
// backend and returns a disconnect function for whatever it opened.
func buildRepositories(
	ctx context.Context,
	log *zerolog.Logger,
	cfg *config.Config,
) (repository.UserRepository, repository.BookmarkRepository, repository.PasswordResetTokenRepository, func()) {
	if cfg.Storage == config.StorageMemory {
		return repository.NewUserMemoryRepository(),
			repository.NewBookmarkMemoryRepository(),
			repository.NewPasswordResetTokenMemoryRepository(),
			func() {}
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.Mongo.Database)

	disconnect := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}

	return repository.NewUserMongoRepository(ctx, log, db),
		repository.NewBookmarkMongoRepository(ctx, log, db),
		repository.NewPasswordResetTokenMongoRepository(ctx, log, db),
		disconnect
}
