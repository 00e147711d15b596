package main

import (
	"context"
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/app"
	"github.com/litetable/litetable-bulkread/internal/config"
	"github.com/litetable/litetable-bulkread/internal/export"
	"github.com/litetable/litetable-bulkread/internal/metrics"
	"github.com/litetable/litetable-bulkread/internal/remotestore"
	"github.com/litetable/litetable-bulkread/internal/server/grpc"
	"github.com/litetable/litetable-bulkread/internal/shard_storage"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	configPath string

	table      string
	startKey   string
	endKey     string
	metricsOut string
)

var rootCmd = &cobra.Command{
	Use:           "litetable-bulkread",
	Short:         "Read LiteTable rows as a flat stream of records",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every record of a row range to stdout as JSON lines",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("table") {
			cfg.Table = table
		}
		if cmd.Flags().Changed("start") {
			cfg.StartKey = startKey
		}
		if cmd.Flags().Changed("end") {
			cfg.EndKey = endKey
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runExport(ctx, cfg)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the configured snapshot over the LiteTable Read RPC",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		application, err := initialize(cfg)
		if err != nil {
			return err
		}
		return application.Run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to litetable.conf (default ~/.litetable/litetable.conf)")

	exportCmd.Flags().StringVar(&table, "table", "", "table whose request.<table> is used")
	exportCmd.Flags().StringVar(&startKey, "start", "", "first row key, inclusive")
	exportCmd.Flags().StringVar(&endKey, "end", "", "last row key, exclusive")
	exportCmd.Flags().StringVar(&metricsOut, "metrics-out", "",
		"write read metrics in the Prometheus text format to this file")

	rootCmd.AddCommand(exportCmd, serveCmd)
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("litetable-bulkread failed")
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}

func runExport(ctx context.Context, cfg *config.Config) error {
	if cfg.Table == "" {
		return fmt.Errorf("no table given: set table in the config or pass --table")
	}

	r, err := cfg.Request(cfg.Table)
	if err != nil {
		return err
	}

	rowStore, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	res, err := export.Run(ctx, &export.Config{
		Store:   rowStore,
		Range:   cfg.Range(),
		Request: r,
		Out:     os.Stdout,
		Metrics: metrics.New(reg),
	})
	if err != nil {
		return err
	}
	log.Info().Str("table", cfg.Table).Msgf("exported %d rows as %d records", res.Rows, res.Records)

	if metricsOut != "" {
		if err := prometheus.WriteToTextfile(metricsOut, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// openStore builds the configured row store and the func that releases it.
func openStore(cfg *config.Config) (store.RowStore, func(), error) {
	switch cfg.Store {
	case config.StoreGRPC:
		remote, err := remotestore.New(&remotestore.Config{Address: cfg.Address()})
		if err != nil {
			return nil, nil, err
		}
		return remote, func() {
			if err := remote.Close(); err != nil {
				log.Debug().Err(err).Msg("closing remote store")
			}
		}, nil
	default:
		shards, err := shard_storage.New(&shard_storage.Config{
			SnapshotPath: cfg.SnapshotPath,
			ShardCount:   cfg.ShardCount,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := shards.Start(); err != nil {
			return nil, nil, err
		}
		return shards, func() { _ = shards.Stop() }, nil
	}
}

func initialize(cfg *config.Config) (*app.App, error) {
	var deps []app.Dependency

	// the snapshot is loaded before the server accepts reads
	shards, err := shard_storage.New(&shard_storage.Config{
		SnapshotPath: cfg.SnapshotPath,
		ShardCount:   cfg.ShardCount,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, shards)

	srv, err := grpc.NewServer(&grpc.Config{
		Address: cfg.ServerAddress,
		Port:    cfg.ServerPort,
		Rows:    shards,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, srv)

	application, err := app.CreateApp(&app.Config{
		ServiceName: "LiteTable Bulk Read",
		StopTimeout: 5 * time.Second,
	}, deps...)
	if err != nil {
		return nil, err
	}

	return application, nil
}
