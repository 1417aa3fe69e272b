package main

import (
	"fmt"
	"os"

	"github.com/de-tools/tenant-atlas/pkg/server"
	"github.com/de-tools/tenant-atlas/pkg/services/calculator"
	"github.com/de-tools/tenant-atlas/pkg/services/config"
	"github.com/de-tools/tenant-atlas/pkg/services/listing"
	listingstore "github.com/de-tools/tenant-atlas/pkg/store/listing"
	"github.com/de-tools/tenant-atlas/pkg/store/post"
	"github.com/de-tools/tenant-atlas/pkg/store/sqldb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Tenant Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadApp(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sqldb.NewDB(ctx, sqldb.Settings{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	listings, err := listingstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create listing store: %w", err)
	}
	posts, err := post.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create post store: %w", err)
	}

	var presets config.PresetRegistry
	if cfg.Presets != "" {
		presets, err = config.NewPresetRegistry(cfg.Presets)
		if err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}
		names, _ := presets.GetPresets()
		logger.Info().Msgf("Presets at `%s` loaded: %v", cfg.Presets, names)
	}

	explorer := listing.NewExplorer(listings)

	// A nil registry must reach the service as a nil interface.
	var presetSource calculator.PresetSource
	if presets != nil {
		presetSource = presets
	}

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Msg("database ready")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Listings:   explorer,
			Calculator: calculator.NewService(explorer, presetSource),
			Presets:    presets,
			Posts:      posts,
			Logger:     logger,
		},
	})

	return api.Start()
}
