package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	api "github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
)

var envFile string

// rootCmd serves the API when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site backend",
	Long: `Portfolio site backend serving projects, work history, education,
blog posts with comments, contact messages and site settings.

Storage is selected with DB_TYPE (sqlite, postgres or supa).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// migrateCmd brings the schema up to date and exits
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment, overlays SSM parameters when a prefix is
// configured and applies the log level.
func loadConfig(ctx context.Context) (map[string]string, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(envFile); err != nil {
		log.Warn().Err(err).Str("file", envFile).Msg("Error loading .env file")
	}

	c := config.New()

	if prefix := config.GetString(c, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		ssmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		params, err := config.LoadSSM(ssmCtx, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to load parameters under %s: %w", prefix, err)
		}
		c = config.Merge(c, params)
	}

	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		log.Warn().Err(err).Msg("Invalid LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	return c, nil
}

func openDatabase(ctx context.Context, c map[string]string) (database.Database, error) {
	dbConfig, err := databaseConfig(c)
	if err != nil {
		return database.Database{}, err
	}
	log.Info().Str("DB_TYPE", dbConfig.Driver).Msg("Connecting to database...")

	openCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	return database.Open(openCtx, dbConfig)
}

func runMigrate(ctx context.Context) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	// Open migrates the schema before returning
	db, err := openDatabase(ctx, c)
	if err != nil {
		return err
	}
	log.Info().Msg("Schema is up to date")
	return db.Close()
}

func runServe() error {
	c, err := loadConfig(context.Background())
	if err != nil {
		return err
	}

	db, err := openDatabase(context.Background(), c)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	// Buffered so the server and signal goroutines never block after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(db, c)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// databaseConfig builds the engine selection from DB_TYPE.
func databaseConfig(c map[string]string) (database.Config, error) {
	dbType := config.GetString(c, "DB_TYPE", "sqlite")
	maxConns := int32(config.GetInt(c, "DB_MAX_CONNS", 10))

	switch dbType {
	case "sqlite":
		return database.Config{
			Driver: "sqlite",
			DSN:    config.GetString(c, "SQLITE_PATH", "portfolio.db"),
		}, nil
	case "postgres":
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return database.Config{}, fmt.Errorf("DATABASE_URL is required when DB_TYPE=postgres")
		}
		return database.Config{Driver: "postgres", DSN: dsn, MaxConns: maxConns}, nil
	case "supa":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			quoteDSNValue(config.GetString(c, "SUPABASE_DB_PASSWORD", "")),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
		return database.Config{Driver: "supa", DSN: dsn, MaxConns: maxConns}, nil
	default:
		return database.Config{}, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSNValue quotes a keyword/value DSN value so spaces and quotes survive.
func quoteDSNValue(v string) string {
	if v == "" {
		return v
	}
	return "'" + dsnEscaper.Replace(v) + "'"
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
