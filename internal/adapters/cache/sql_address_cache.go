package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
)

// SQLAddressCache is a SQL-backed cache mapping coordinates to their
// reverse-geocoded formatted address.
type SQLAddressCache struct {
	DB *sql.DB
}

func NewSQLAddressCache(db *sql.DB) *SQLAddressCache {
	return &SQLAddressCache{DB: db}
}

// coordKey rounds to 6 decimal places (~0.1 m) so float noise does not
// defeat the cache.
func coordKey(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) +
		"," + strconv.FormatFloat(c.Lng, 'f', 6, 64)
}

// Fetch cached addresses for the given coordinates.
func (s *SQLAddressCache) GetMany(
	ctx context.Context,
	coords []domain.Coordinates,
) (_ map[domain.Coordinates]string, err error) {
	defer obs.Time(ctx, "address.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("address cache: db is nil")
	}

	if len(coords) == 0 {
		return map[domain.Coordinates]string{}, nil
	}

	byKey := make(map[string]domain.Coordinates, len(coords))
	keys := make([]string, 0, len(coords))
	for _, c := range coords {
		if !c.Valid() {
			continue
		}

		k := coordKey(c)
		if _, ok := byKey[k]; ok {
			continue
		}
		byKey[k] = c
		keys = append(keys, k)
	}

	if len(keys) == 0 {
		return map[domain.Coordinates]string{}, nil
	}

	q := `
	SELECT coord_key, address
    FROM address_cache
    WHERE coord_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, keys)
	if err != nil {
		return nil, fmt.Errorf("get address cache: query address_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Coordinates]string, len(keys))
	for rows.Next() {
		var key, addr string
		if err := rows.Scan(&key, &addr); err != nil {
			return nil, fmt.Errorf("get address cache: scan rows: %w", err)
		}

		coord, ok := byKey[key]
		if !ok {
			continue
		}
		out[coord] = addr
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get address cache: row iteration: %w", err)
	}

	return out, nil
}

// Store coordinate -> address mappings in the cache.
func (s *SQLAddressCache) PutMany(ctx context.Context, addresses map[domain.Coordinates]string) error {
	if s.DB == nil {
		return errors.New("address cache: db is nil")
	}

	if len(addresses) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert address cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO address_cache (coord_key, address)
    VALUES ($1, $2)
	ON CONFLICT (coord_key) DO UPDATE
	SET address = EXCLUDED.address;
	`)
	if err != nil {
		return fmt.Errorf("insert address cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for coord, addr := range addresses {
		if strings.TrimSpace(addr) == "" {
			continue
		}

		if _, err := stmt.ExecContext(ctx, coordKey(coord), addr); err != nil {
			return fmt.Errorf("insert address cache coord=%q: %w", coordKey(coord), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert address cache commit: %w", err)
	}

	return nil
}

// InitSchema creates the address cache table when missing.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS address_cache (
		coord_key TEXT PRIMARY KEY,
		address   TEXT NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("init address cache schema: %w", err)
	}
	return nil
}
