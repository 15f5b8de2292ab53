package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adisharma/clubhub/internal/app/controllers"
	"github.com/adisharma/clubhub/internal/app/repositories"
	"github.com/adisharma/clubhub/internal/app/routes"
	"github.com/adisharma/clubhub/internal/app/services"
	"github.com/adisharma/clubhub/internal/config"
	"github.com/adisharma/clubhub/internal/db"
	"github.com/adisharma/clubhub/internal/middleware"
	"github.com/adisharma/clubhub/internal/pkg/auth"
	"github.com/adisharma/clubhub/internal/pkg/logger"
)

// Server holds the state for the HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	client *mongo.Client
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads configuration and wires the full dependency graph
func NewServer(configPath string) (*Server, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})
	lgr := logger.Default()

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := db.OpenMongo(context.Background(), cfg.Mongo.URI, cfg.MongoConnTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	lgr.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	repos := repositories.NewRepositories(client.Database(cfg.Mongo.Database))
	if err := repos.EnsureIndexes(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to ensure indexes")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenExp(),
		RefreshTokenExp: cfg.RefreshTokenExp(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	svcs := services.NewServices(repos, jwtService, lgr)

	authController := controllers.NewAuthController(svcs.Auth, lgr.With().Str("controller", "auth").Logger())
	profileController := controllers.NewProfileController(svcs.Profiles, lgr.With().Str("controller", "profile").Logger())
	registrationController := controllers.NewRegistrationController(svcs.Registrations, lgr.With().Str("controller", "registration").Logger())
	teamController := controllers.NewTeamController(svcs.Teams, lgr.With().Str("controller", "team").Logger())
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.SetupRouter(router, authController, profileController, registrationController, teamController, authMiddleware)

	return &Server{
		config: cfg,
		router: router,
		client: client,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var shutdownErr error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = err
		}
	}

	if s.client != nil {
		if err := s.client.Disconnect(ctx); err != nil {
			s.logger.Error().Err(err).Msg("MongoDB disconnect error")
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	return shutdownErr
}
