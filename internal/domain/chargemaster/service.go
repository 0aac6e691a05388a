package chargemaster

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type Service struct {
	prices Repository
}

func NewService(prices Repository) *Service {
	return &Service{prices: prices}
}

// Get returns the full price list in catalog order, zero-filled for
// codes never priced.
func (s *Service) Get(ctx context.Context) (*PriceList, error) {
	stored, err := s.prices.GetPrices(ctx)
	if err != nil {
		return nil, err
	}
	return NewPriceList(stored), nil
}

// Update bulk-upserts prices. Codes outside the catalog and negative
// prices are rejected; codes absent from the request keep their
// current price.
func (s *Service) Update(ctx context.Context, prices map[string]decimal.Decimal) (*PriceList, error) {
	for code, price := range prices {
		if !KnownCode(code) {
			return nil, fmt.Errorf("unknown charge code: %s", code)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("price for %s cannot be negative", code)
		}
	}
	if err := s.prices.UpsertPrices(ctx, prices); err != nil {
		return nil, err
	}
	return s.Get(ctx)
}
