package chargemaster

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	GetPrices(ctx context.Context) (map[string]decimal.Decimal, error)
	UpsertPrices(ctx context.Context, prices map[string]decimal.Decimal) error
}
