package chargemaster

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meddesk/meddesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) GetPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT charge_code, unit_price FROM charge_master`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	prices := make(map[string]decimal.Decimal)
	for rows.Next() {
		var code string
		var price decimal.Decimal
		if err := rows.Scan(&code, &price); err != nil {
			return nil, err
		}
		prices[code] = price
	}
	return prices, rows.Err()
}

func (r *repoPG) UpsertPrices(ctx context.Context, prices map[string]decimal.Decimal) error {
	conn := r.conn(ctx)
	for code, price := range prices {
		_, err := conn.Exec(ctx, `
			INSERT INTO charge_master (charge_code, unit_price)
			VALUES ($1, $2)
			ON CONFLICT (charge_code) DO UPDATE SET unit_price = EXCLUDED.unit_price, updated_at = NOW()`,
			code, price)
		if err != nil {
			return err
		}
	}
	return nil
}
