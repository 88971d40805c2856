package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cvshop/internal/port"
)

// PostgresKV stores values in the cart_state table created by the migrations package.
type PostgresKV struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPostgresKV(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.sb.Select("value").From("cart_state").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("sb.Select: %w", err)
	}

	var value []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrKeyNotFound
		}
		return nil, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return value, nil
}

func (s *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.sb.Insert("cart_state").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("sb.Insert: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (s *PostgresKV) Delete(ctx context.Context, key string) (bool, error) {
	query, args, err := s.sb.Delete("cart_state").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return false, fmt.Errorf("sb.Delete: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("pool.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
