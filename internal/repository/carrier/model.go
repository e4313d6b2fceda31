package carrier

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CarrierDB struct {
	ID          int64     `db:"id"`
	Phone       string    `db:"phone"`
	Description string    `db:"description"`
	PIN         string    `db:"pin"`
	CreatedAt   time.Time `db:"created_at"`
}

type CarrierModifyDB struct {
	Phone       *string
	Description *string
	PIN         *string
}
