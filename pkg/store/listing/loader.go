package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/de-tools/tenant-atlas/pkg/store/sqldb"
)

// LoadDatasetFromFile reads a stations/tenants seed file.
func LoadDatasetFromFile(path string) (store.ListingDataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return store.ListingDataset{}, fmt.Errorf("read listing dataset: %w", err)
	}

	var ds store.ListingDataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return store.ListingDataset{}, fmt.Errorf("unmarshal listing dataset: %w", err)
	}
	return ds, nil
}

// Import writes the whole dataset in one transaction.
func Import(ctx context.Context, db *sqldb.DB, s Store, ds store.ListingDataset) error {
	return db.InTx(ctx, func(ctx context.Context) error {
		if err := s.UpsertStations(ctx, ds.Stations); err != nil {
			return err
		}
		return s.UpsertTenants(ctx, ds.Tenants)
	})
}
