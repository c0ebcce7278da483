package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/arrivedata/i94etl/internal/db"
)

var (
	schemaConnection string
	schemaDrop       bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the warehouse tables in PostgreSQL",
	Long: `Create the star schema tables in the target warehouse so that
'stage' has somewhere to load into. Tables are created with IF NOT EXISTS,
so the command is safe to repeat.

With --drop the tables (and the staging audit table) are dropped instead.

Example:
  i94etl schema --connection "postgres://..."`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaConnection, "connection", "",
		"PostgreSQL connection string")
	schemaCmd.Flags().BoolVar(&schemaDrop, "drop", false,
		"drop the warehouse tables instead of creating them")
}

func runSchema(cmd *cobra.Command, args []string) error {
	if schemaConnection != "" {
		cfg.Stage.Connection = schemaConnection
	}
	if err := cfg.ValidateSchema(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Stage.Connection)
	if err != nil {
		return err
	}
	defer pool.Close()

	if schemaDrop {
		return db.DropSchema(ctx, pool)
	}
	return db.CreateSchema(ctx, pool)
}
