package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

const updateProfileSQL = `
	UPDATE profiles
	SET location = COALESCE(NULLIF($1, ''), location),
	    crops = $2,
	    farm_name = COALESCE(NULLIF($3, ''), farm_name),
	    updated_at = $4
	WHERE id = $5`

const selectLocationSQL = `SELECT location FROM profiles WHERE id = $1`

// Store persists normalized profiles into the profiles table.
// It implements pipeline.BatchLoader.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Store{db: db, logger: logger}, nil
}

// LoadBatch updates every profile in one transaction. Profiles without a row
// are logged and skipped; any other failure rolls the batch back. An empty
// location or farm name keeps the stored value.
func (s *Store) LoadBatch(ctx context.Context, profiles []domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, updateProfileSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare profile update: %w", err)
	}
	defer stmt.Close()

	for i := range profiles {
		p := &profiles[i]
		crops := p.Crops
		if crops == nil {
			crops = []string{} // column is NOT NULL
		}
		res, err := stmt.ExecContext(ctx, p.Location, pq.Array(crops), p.FarmName, p.UpdatedAt, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update profile %s: %w", p.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			s.logger.Warn("profile row missing, update skipped", "profile_id", p.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile updates: %w", err)
	}
	return nil
}

// Location reads the stored location string of a profile. A missing row
// wraps domain.ErrProfileNotFound.
func (s *Store) Location(ctx context.Context, id string) (string, error) {
	var location sql.NullString
	err := s.db.QueryRowContext(ctx, selectLocationSQL, id).Scan(&location)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read profile %s: %w", id, err)
	}
	return location.String, nil
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
