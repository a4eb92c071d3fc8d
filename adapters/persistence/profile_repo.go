package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/khoahotran/career-os/internal/domain/profile"
	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/logger"
)

type postgresProfileRepo struct {
	source DBSource
	logger logger.Logger
}

func NewPostgresProfileRepo(source DBSource, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{source: source, logger: log}
}

func (r *postgresProfileRepo) Get(ctx context.Context) (*profile.Profile, error) {
	query := `SELECT ` + documentColumn + ` FROM profiles WHERE singleton`

	db, err := r.source.Acquire(ctx)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(err)
	}
	return r.scan(db.QueryRow(ctx, query))
}

// Upsert is a single INSERT .. ON CONFLICT on the singleton key, so concurrent
// writers never race between a read and a write.
func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	p.Normalize()
	if err := validateRecord(profile.EntityName, p); err != nil {
		return nil, err
	}

	body, err := encodeDocument(p)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode profile", err)
	}

	query := `
		INSERT INTO profiles (singleton, id, data, created_at, updated_at)
		VALUES (TRUE, $1, $2, $3, $3)
		ON CONFLICT (singleton) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = GREATEST(EXCLUDED.updated_at, profiles.updated_at + interval '1 microsecond')
		RETURNING ` + documentColumn

	db, err := r.source.Acquire(ctx)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(err)
	}

	saved, err := r.scan(db.QueryRow(ctx, query, uuid.New(), body, storeNow()))
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, apperror.NewInternal("profile upsert returned no row", nil)
	}
	return saved, nil
}

func (r *postgresProfileRepo) scan(row pgx.Row) (*profile.Profile, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ClassifyDatabaseError(fmt.Errorf("scan profile row: %w", err))
	}
	return decodeDocument(raw, (*profile.Profile).Normalize)
}
