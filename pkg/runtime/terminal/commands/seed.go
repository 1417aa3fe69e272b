package commands

import (
	"fmt"

	listingstore "github.com/de-tools/tenant-atlas/pkg/store/listing"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	db   DatabaseFlags
	file string
}

func NewSeedCmd() *cobra.Command {
	sc := &SeedCmd{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load stations and tenant listings from a JSON file",
		RunE:  sc.run,
	}

	sc.db.register(cmd)
	cmd.Flags().StringVarP(&sc.file, "file", "f", "", "Path to the listing dataset")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ds, err := listingstore.LoadDatasetFromFile(sc.file)
	if err != nil {
		return err
	}

	db, err := sc.db.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	listings, err := listingstore.NewStore(db)
	if err != nil {
		return err
	}
	if err := listingstore.Import(ctx, db, listings, ds); err != nil {
		return fmt.Errorf("failed to import %s: %w", sc.file, err)
	}

	zerolog.Ctx(ctx).Debug().Str("dsn", sc.db.DSN).Msg("dataset imported")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stations and %d tenants\n", len(ds.Stations), len(ds.Tenants))
	return nil
}
