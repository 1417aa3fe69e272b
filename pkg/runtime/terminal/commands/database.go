package commands

import (
	"context"

	"github.com/de-tools/tenant-atlas/pkg/store/sqldb"
	"github.com/spf13/cobra"
)

// DatabaseFlags select the listing database a command works against.
type DatabaseFlags struct {
	Driver string
	DSN    string
}

func (f *DatabaseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Driver, "driver", sqldb.DriverSQLite, "Database driver (sqlite3 or postgres)")
	cmd.Flags().StringVar(&f.DSN, "db", "blog.db", "Database file or connection string")
}

func (f *DatabaseFlags) open(ctx context.Context) (*sqldb.DB, error) {
	return sqldb.NewDB(ctx, sqldb.Settings{Driver: f.Driver, DSN: f.DSN})
}
