package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/de-tools/tenant-atlas/pkg/store/sqldb"
	"github.com/rs/zerolog"
)

type Store interface {
	ListStations(ctx context.Context) ([]store.Station, error)
	GetStation(ctx context.Context, name string) (store.Station, error)
	ListTenants(ctx context.Context) ([]store.Tenant, error)
	ListTenantsByStation(ctx context.Context, stationName string) ([]store.Tenant, error)
	GetTenant(ctx context.Context, id int64) (store.Tenant, error)
	UpsertStations(ctx context.Context, stations []store.Station) error
	UpsertTenants(ctx context.Context, tenants []store.Tenant) error
}

const tenantColumns = `id, address, price, floor, station_name, detail_url, image_url,
		shikikin, reikin, hoshokin, kaiyakukin`

type defaultStore struct {
	db *sqldb.DB
}

func NewStore(db *sqldb.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) ListStations(ctx context.Context) ([]store.Station, error) {
	rows, err := s.db.Conn(ctx).QueryContext(ctx,
		`SELECT id, name, address, lat, lon FROM stations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("stations query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	stations := []store.Station{}
	for rows.Next() {
		var st store.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.Lat, &st.Lon); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

func (s *defaultStore) GetStation(ctx context.Context, name string) (store.Station, error) {
	var st store.Station
	err := s.db.Conn(ctx).QueryRowContext(ctx,
		s.db.Rebind(`SELECT id, name, address, lat, lon FROM stations WHERE name = ?`), name).
		Scan(&st.ID, &st.Name, &st.Address, &st.Lat, &st.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Station{}, fmt.Errorf("station %q: %w", name, store.ErrNotFound)
	}
	if err != nil {
		return store.Station{}, fmt.Errorf("station query failed: %w", err)
	}
	return st, nil
}

func (s *defaultStore) ListTenants(ctx context.Context) ([]store.Tenant, error) {
	rows, err := s.db.Conn(ctx).QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("tenants query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	return scanTenants(rows)
}

// ListTenantsByStation matches station names case-insensitively by substring,
// so "shibuya" also finds tenants listed under "Shibuya Station".
func (s *defaultStore) ListTenantsByStation(ctx context.Context, stationName string) ([]store.Tenant, error) {
	pattern := "%" + escapeLike(strings.ToLower(stationName)) + "%"
	rows, err := s.db.Conn(ctx).QueryContext(ctx,
		s.db.Rebind(`SELECT `+tenantColumns+` FROM tenants
		WHERE LOWER(station_name) LIKE ? ESCAPE '\'
		ORDER BY id`), pattern)
	if err != nil {
		return nil, fmt.Errorf("tenants by station query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	return scanTenants(rows)
}

func (s *defaultStore) GetTenant(ctx context.Context, id int64) (store.Tenant, error) {
	var t store.Tenant
	err := s.db.Conn(ctx).QueryRowContext(ctx,
		s.db.Rebind(`SELECT `+tenantColumns+` FROM tenants WHERE id = ?`), id).
		Scan(&t.ID, &t.Address, &t.Price, &t.Floor, &t.StationName, &t.DetailURL, &t.ImageURL,
			&t.Shikikin, &t.Reikin, &t.Hoshokin, &t.Kaiyakukin)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Tenant{}, fmt.Errorf("tenant %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return store.Tenant{}, fmt.Errorf("tenant query failed: %w", err)
	}
	return t, nil
}

// UpsertStations inserts stations keyed by name, updating the ones that
// already exist.
func (s *defaultStore) UpsertStations(ctx context.Context, stations []store.Station) error {
	query := s.db.Rebind(`
		INSERT INTO stations (name, address, lat, lon) VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			address = excluded.address,
			lat = excluded.lat,
			lon = excluded.lon`)

	return s.db.InTx(ctx, func(ctx context.Context) error {
		for _, st := range stations {
			if _, err := s.db.Conn(ctx).ExecContext(ctx, query, st.Name, st.Address, st.Lat, st.Lon); err != nil {
				return fmt.Errorf("failed to upsert station %q: %w", st.Name, err)
			}
		}
		return nil
	})
}

// UpsertTenants inserts tenants keyed by address, updating the ones that
// already exist.
func (s *defaultStore) UpsertTenants(ctx context.Context, tenants []store.Tenant) error {
	query := s.db.Rebind(`
		INSERT INTO tenants (address, price, floor, station_name, detail_url, image_url,
			shikikin, reikin, hoshokin, kaiyakukin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (address) DO UPDATE SET
			price = excluded.price,
			floor = excluded.floor,
			station_name = excluded.station_name,
			detail_url = excluded.detail_url,
			image_url = excluded.image_url,
			shikikin = excluded.shikikin,
			reikin = excluded.reikin,
			hoshokin = excluded.hoshokin,
			kaiyakukin = excluded.kaiyakukin`)

	return s.db.InTx(ctx, func(ctx context.Context) error {
		for _, t := range tenants {
			_, err := s.db.Conn(ctx).ExecContext(ctx, query,
				t.Address, t.Price, t.Floor, t.StationName, t.DetailURL, t.ImageURL,
				t.Shikikin, t.Reikin, t.Hoshokin, t.Kaiyakukin)
			if err != nil {
				return fmt.Errorf("failed to upsert tenant %q: %w", t.Address, err)
			}
		}
		return nil
	})
}

func scanTenants(rows *sql.Rows) ([]store.Tenant, error) {
	tenants := []store.Tenant{}
	for rows.Next() {
		var t store.Tenant
		if err := rows.Scan(&t.ID, &t.Address, &t.Price, &t.Floor, &t.StationName, &t.DetailURL, &t.ImageURL,
			&t.Shikikin, &t.Reikin, &t.Hoshokin, &t.Kaiyakukin); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close listing query rows")
	}
}
