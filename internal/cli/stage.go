package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arrivedata/i94etl/internal/db"
	"github.com/arrivedata/i94etl/internal/logging"
	"github.com/arrivedata/i94etl/internal/stage"
)

var (
	stageConnection string
	stageTable      string
	stageBucket     string
	stageRegion     string
	stageEndpoint   string
	stageKey        string
	stageDate       string
	stageTruncate   bool
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Load a produced table from S3 into a warehouse table",
	Long: `Fetch a Parquet table from S3 and bulk-load it into an existing
PostgreSQL table. The object key is rendered from the key template using
the table name and the run date, so the same invocation can be scheduled
daily without editing the key.

With --truncate the target table is emptied first, making the load
idempotent for full-refresh tables.

Example:
  i94etl stage --table fact_immigration --bucket i94-warehouse \
    --connection "postgres://..." --truncate
  i94etl stage --table dim_time --date 2016-04-30`,
	RunE: runStage,
}

func init() {
	stageCmd.Flags().StringVar(&stageConnection, "connection", "",
		"PostgreSQL connection string")
	stageCmd.Flags().StringVar(&stageTable, "table", "",
		"warehouse table to load (also names the S3 object)")
	stageCmd.Flags().StringVar(&stageBucket, "bucket", "",
		"S3 bucket holding the produced tables")
	stageCmd.Flags().StringVar(&stageRegion, "region", "",
		"AWS region of the bucket")
	stageCmd.Flags().StringVar(&stageEndpoint, "endpoint", "",
		"custom S3 endpoint (e.g. MinIO)")
	stageCmd.Flags().StringVar(&stageKey, "key-template", "",
		"object key template with {{.Table}} and {{.Date}} fields")
	stageCmd.Flags().StringVar(&stageDate, "date", "",
		"run date for the key template, YYYY-MM-DD (default: today)")
	stageCmd.Flags().BoolVar(&stageTruncate, "truncate", false,
		"truncate the target table before loading")
}

func runStage(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if stageConnection != "" {
		cfg.Stage.Connection = stageConnection
	}
	if stageTable != "" {
		cfg.Stage.Table = stageTable
	}
	if stageBucket != "" {
		cfg.Stage.Bucket = stageBucket
	}
	if stageRegion != "" {
		cfg.Stage.Region = stageRegion
	}
	if stageEndpoint != "" {
		cfg.Stage.Endpoint = stageEndpoint
	}
	if stageKey != "" {
		cfg.Stage.KeyTemplate = stageKey
	}
	if stageTruncate {
		cfg.Stage.Truncate = true
	}

	if err := cfg.ValidateStage(); err != nil {
		return err
	}

	runDate := time.Now().UTC()
	if stageDate != "" {
		var err error
		runDate, err = time.Parse("2006-01-02", stageDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", stageDate, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher, err := stage.NewS3Fetcher(cfg.Stage.Region, cfg.Stage.Endpoint)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.Stage.Connection)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := stage.New(fetcher, pool).Run(ctx, cfg.Stage, runDate)
	if err != nil {
		return err
	}

	if err := db.RecordStageRun(ctx, pool, cfg.Stage.Table, result.Key, result.Rows); err != nil {
		return err
	}

	logging.Info().
		Str("table", cfg.Stage.Table).
		Str("key", result.Key).
		Int64("rows", result.Rows).
		Msg("Staging complete")

	return nil
}
