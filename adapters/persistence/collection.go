package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// documentColumn folds the store-owned columns into the stored document so a
// row decodes straight into the record type.
const documentColumn = "data || jsonb_build_object('id', id::text, 'createdAt', created_at, 'updatedAt', updated_at)"

// reservedKeys never reach the data column; the store owns them.
var reservedKeys = []string{"id", "createdAt", "updatedAt"}

// kind describes one record collection: where it lives, how it sorts and how
// its filter type translates to SQL.
type kind[T any, F any] struct {
	table     string
	entity    string
	orderBy   []string
	filter    func(F) sq.Sqlizer
	normalize func(*T)
}

// collection is the generic Entity Store over one record kind. The per-kind
// repositories are instantiations of it, not separate implementations.
type collection[T any, F any, P any] struct {
	kind   kind[T, F]
	source DBSource
	logger logger.Logger
}

func newCollection[T any, F any, P any](k kind[T, F], source DBSource, log logger.Logger) *collection[T, F, P] {
	return &collection[T, F, P]{kind: k, source: source, logger: log}
}

func (c *collection[T, F, P]) List(ctx context.Context, filter F) ([]*T, error) {
	query, args, err := psql.Select(documentColumn).
		From(c.kind.table).
		Where(c.kind.filter(filter)).
		OrderBy(c.kind.orderBy...).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list query for "+c.kind.entity, err)
	}

	db, err := c.source.Acquire(ctx)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(fmt.Errorf("query %s: %w", c.kind.table, err))
	}
	defer rows.Close()

	records := make([]*T, 0)
	for rows.Next() {
		rec, err := c.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.ClassifyDatabaseError(fmt.Errorf("iterate %s rows: %w", c.kind.table, err))
	}
	return records, nil
}

// FindByID returns nil, nil when no record has the id.
func (c *collection[T, F, P]) FindByID(ctx context.Context, id string) (*T, error) {
	uid, err := c.parseID(id)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select(documentColumn).
		From(c.kind.table).
		Where(sq.Eq{"id": uid}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find query for "+c.kind.entity, err)
	}

	db, err := c.source.Acquire(ctx)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(err)
	}
	return c.scanOne(db.QueryRow(ctx, query, args...))
}

func (c *collection[T, F, P]) Create(ctx context.Context, rec *T) (*T, error) {
	c.kind.normalize(rec)
	if err := validateRecord(c.kind.entity, rec); err != nil {
		return nil, err
	}

	body, err := encodeDocument(rec)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode "+c.kind.entity, err)
	}

	now := storeNow()
	query, args, err := psql.Insert(c.kind.table).
		Columns("id", "data", "created_at", "updated_at").
		Values(uuid.New(), body, now, now).
		Suffix("RETURNING " + documentColumn).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build insert for "+c.kind.entity, err)
	}

	db, err := c.source.Acquire(ctx)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(err)
	}
	return c.scanOne(db.QueryRow(ctx, query, args...))
}

// Update merges the set fields of patch into the stored document. It returns
// nil, nil when no record has the id.
func (c *collection[T, F, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	uid, err := c.parseID(id)
	if err != nil {
		return nil, err
	}
	if err := validateRecord(c.kind.entity, patch); err != nil {
		return nil, err
	}

	body, err := encodeDocument(patch)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode "+c.kind.entity+" patch", err)
	}

	query, args, err := psql.Update(c.kind.table).
		Set("data", sq.Expr("data || ?::jsonb", body)).
		// updatedAt must advance even when two writes land in the same microsecond
		Set("updated_at", sq.Expr("GREATEST(?::timestamptz, updated_at + interval '1 microsecond')", storeNow())).
		Where(sq.Eq{"id": uid}).
		Suffix("RETURNING " + documentColumn).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build update for "+c.kind.entity, err)
	}

	db, err := c.source.Acquire(ctx)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(err)
	}
	return c.scanOne(db.QueryRow(ctx, query, args...))
}

// Delete reports false when no record has the id.
func (c *collection[T, F, P]) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := c.parseID(id)
	if err != nil {
		return false, err
	}

	query, args, err := psql.Delete(c.kind.table).Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return false, apperror.NewInternal("failed to build delete for "+c.kind.entity, err)
	}

	db, err := c.source.Acquire(ctx)
	if err != nil {
		return false, apperror.ClassifyDatabaseError(err)
	}

	cmdTag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return false, apperror.ClassifyDatabaseError(fmt.Errorf("delete from %s: %w", c.kind.table, err))
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (c *collection[T, F, P]) parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NewValidation(fmt.Sprintf("Invalid %s id '%s'", c.kind.entity, id), "id")
	}
	return uid, nil
}

func (c *collection[T, F, P]) scanOne(row pgx.Row) (*T, error) {
	rec, err := c.scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (c *collection[T, F, P]) scan(row pgx.Row) (*T, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, apperror.ClassifyDatabaseError(fmt.Errorf("scan %s row: %w", c.kind.table, err))
	}
	return decodeDocument(raw, c.kind.normalize)
}

func decodeDocument[T any](raw []byte, normalize func(*T)) (*T, error) {
	rec := new(T)
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, apperror.NewInternal("failed to decode stored document", err)
	}
	normalize(rec)
	return rec, nil
}

// encodeDocument marshals v and drops the store-owned keys.
func encodeDocument(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for _, k := range reservedKeys {
		delete(fields, k)
	}
	return json.Marshal(fields)
}

// storeNow matches Postgres timestamp precision so written and read values compare equal.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
