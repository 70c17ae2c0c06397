package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dfryer1193/onewheel-blog/blog/application"
	"github.com/dfryer1193/onewheel-blog/blog/persistence"
	"github.com/dfryer1193/onewheel-blog/internal/auth"
	"github.com/dfryer1193/onewheel-blog/internal/config"
	"github.com/dfryer1193/onewheel-blog/internal/rest"
	"github.com/dfryer1193/onewheel-blog/shared/db"
	"github.com/dfryer1193/onewheel-blog/shared/db/sqlite"
	"github.com/dfryer1193/onewheel-blog/shared/source"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const postsURLPath = "/posts"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "onewheel-blog",
		Short:         "Markdown blog with a single-admin editor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, toml or json)")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		setupLogging(cfg.Log)
		return cfg, nil
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Create or replace posts from the markdown files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return importPosts(cmd.Context(), cfg, args[0])
		},
	}

	hashPassword := &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print the bcrypt hash for admin.password_hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return errors.New("password cannot be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	root.AddCommand(serveCmd, importCmd, hashPassword)
	root.RunE = serveCmd.RunE
	return root
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func openDatabase(cfg *config.Config) (*sqlite.SQLiteDB, error) {
	database := sqlite.NewSQLiteDB(cfg.SQLite())
	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

func serve(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	postRepo := persistence.NewPostRepository(database.DB())
	postService := application.NewPostService(postRepo, application.NewMarkdownRenderer(postsURLPath))
	adminService := application.NewAdminService(postRepo)
	sessions := auth.NewSessionManager(cfg.Auth())
	loginLimiter := rate.NewLimiter(rate.Limit(float64(cfg.Login.RatePerMinute)/60), cfg.Login.Burst)

	gin.SetMode(gin.ReleaseMode)
	engine := rest.NewEngine()
	rest.NewApi(engine, postService, adminService, sessions, loginLimiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("database", cfg.Database.Path).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

func importPosts(ctx context.Context, cfg *config.Config, dir string) error {
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	conn := database.DB()
	importer := application.NewImporter(
		persistence.NewPostRepository(conn),
		source.NewDirectorySource(dir),
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.RunInTransaction(ctx, conn, fn)
		},
	)

	result, err := importer.Import(ctx)
	if err != nil {
		return err
	}

	log.Info().Str("dir", dir).Int("created", result.Created).Int("updated", result.Updated).Msg("Import finished")
	return nil
}
