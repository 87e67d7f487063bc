package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jsarabia/fn-location/internal/domain"
	_ "github.com/lib/pq"
)

// PostgresSnapshotRepository stores the single last-known coordinate in one
// fixed row. It is a restart-recovery aid, not a history.
type PostgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS coordinate_snapshot (
			id          smallint PRIMARY KEY,
			latitude    double precision NOT NULL,
			longitude   double precision NOT NULL,
			source      text NOT NULL,
			updated_at  timestamptz NOT NULL
		)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return domain.ErrRepository("ensure schema").WithCause(err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, coordinate domain.Coordinate, source domain.CommitSource) error {
	query := `
		INSERT INTO coordinate_snapshot (id, latitude, longitude, source, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(
		ctx, query,
		coordinate.Latitude, coordinate.Longitude, string(source), time.Now().UTC(),
	)
	if err != nil {
		return domain.ErrRepository("save snapshot").WithCause(err)
	}

	return nil
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context) (domain.Coordinate, bool, error) {
	query := `SELECT latitude, longitude FROM coordinate_snapshot WHERE id = 1`

	var latitude, longitude float64
	err := r.db.QueryRowContext(ctx, query).Scan(&latitude, &longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, domain.ErrRepository("load snapshot").WithCause(err)
	}

	return domain.NewCoordinate(latitude, longitude), true, nil
}
