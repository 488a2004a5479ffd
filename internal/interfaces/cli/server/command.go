// Package server implements the `server` CLI command: configuration, store
// bootstrap and the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	catalogApp "loreforge/internal/application/catalog"
	contentApp "loreforge/internal/application/content"
	generationApp "loreforge/internal/application/generation"
	settingApp "loreforge/internal/application/setting"
	"loreforge/internal/domain/content"
	"loreforge/internal/infrastructure/config"
	"loreforge/internal/infrastructure/database"
	"loreforge/internal/infrastructure/imaging"
	"loreforge/internal/infrastructure/migration"
	openaiInfra "loreforge/internal/infrastructure/openai"
	"loreforge/internal/infrastructure/repository"
	httpRouter "loreforge/internal/interfaces/http"
	"loreforge/internal/interfaces/http/handlers"
	"loreforge/internal/shared/logger"
	"loreforge/internal/shared/services/markdown"
)

var (
	env         string
	skipMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the loreforge HTTP server: runs pending schema migrations, imports the seed catalog on first start and serves the generation API.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Skip running pending migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
		Debug:      env == "development",
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	log := logger.NewLogger()
	ctx := context.Background()

	if !skipMigrate {
		engine := migration.NewEngine(db, migration.EmbeddedSource(), log)
		if err := engine.Migrate(ctx); err != nil {
			// A failed migration leaves the schema at the prior version;
			// refusing to serve is the only safe response.
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}

	categoryRepo := repository.NewCategoryRepository(db)
	parameterRepo := repository.NewParameterRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	contentRepo := repository.NewGeneratedContentRepository(db)

	if cfg.Seed.Enabled {
		seeder := catalogApp.NewSeeder(categoryRepo, parameterRepo, log)
		if _, err := seeder.ImportIfEmpty(ctx, cfg.Seed.Path); err != nil {
			// Seeding is best-effort; an empty catalog is still servable.
			logger.Warn("seed import failed", "error", err)
		}
	}

	generationService, err := buildGenerationService(cfg, contentRepo, log)
	if err != nil {
		return err
	}

	md := markdown.NewService()
	routerHandlers := httpRouter.Handlers{
		Generation: handlers.NewGenerationHandler(generationService, log),
		Content:    handlers.NewContentHandler(contentApp.NewService(contentRepo, md, log), log),
		Catalog:    handlers.NewCatalogHandler(catalogApp.NewService(categoryRepo, parameterRepo, log), log),
		Setting:    handlers.NewSettingHandler(settingApp.NewService(settingRepo, log), log),
	}

	router := httpRouter.NewRouter(cfg, db, routerHandlers, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // generation requests block on the upstream model
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// buildGenerationService wires the upstream adapters into the orchestrator.
// The image processor is attached only when image processing is enabled;
// without it the pipeline falls back to URL-mode results.
func buildGenerationService(cfg *config.Config, contentRepo content.Repository, log logger.Interface) (*generationApp.Service, error) {
	client, err := openaiInfra.NewClient(&cfg.OpenAI)
	if err != nil {
		return nil, err
	}

	textGen := openaiInfra.NewTextGenerator(client, &cfg.OpenAI, &cfg.Generation, log)
	imageGen := openaiInfra.NewImageGenerator(client, &cfg.OpenAI, &cfg.Generation, log)

	var processor generationApp.ImageProcessor
	if cfg.Generation.ProcessImages {
		processor = imaging.NewProcessor(log)
	}

	return generationApp.NewService(
		textGen,
		imageGen,
		processor,
		contentRepo,
		generationApp.Options{
			ImageStyle:      cfg.Generation.ImageStyle,
			MaxImagePrompt:  cfg.Generation.MaxImagePrompt,
			MaxFictionChars: cfg.Generation.MaxFictionChars,
		},
		log,
	), nil
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
