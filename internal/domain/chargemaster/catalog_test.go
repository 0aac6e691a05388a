package chargemaster

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCatalogShape(t *testing.T) {
	if len(Catalog) != 10 {
		t.Fatalf("expected 10 sections, got %d", len(Catalog))
	}
	codes := CodeOrder()
	if len(codes) != 65 {
		t.Fatalf("expected 65 charge codes, got %d", len(codes))
	}
	seen := make(map[string]bool)
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("duplicate charge code: %s", c)
		}
		seen[c] = true
	}
	if codes[0] != "registration_fee" {
		t.Fatalf("unexpected first code: %s", codes[0])
	}
	if codes[len(codes)-1] != "dialysis_package" {
		t.Fatalf("unexpected last code: %s", codes[len(codes)-1])
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"icu":            "Icu",
		"nicu_picu":      "Nicu Picu",
		"cpap_bipap_use": "Cpap Bipap Use",
		"dressing":       "Dressing",
	}
	for code, want := range cases {
		if got := Humanize(code); got != want {
			t.Fatalf("Humanize(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestNewPriceList_ZeroFillsAndOrders(t *testing.T) {
	pl := NewPriceList(map[string]decimal.Decimal{
		"icu":      decimal.NewFromInt(5000),
		"dressing": decimal.NewFromInt(100),
	})

	entries := pl.Entries()
	if len(entries) != 65 {
		t.Fatalf("expected 65 entries, got %d", len(entries))
	}
	if entries[0].Code != "registration_fee" || !entries[0].UnitPrice.IsZero() {
		t.Fatalf("expected zero-filled registration_fee first, got %+v", entries[0])
	}

	e, ok := pl.Lookup("icu")
	if !ok || !e.UnitPrice.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected icu entry: %+v", e)
	}
	if e.Name != "Icu" {
		t.Fatalf("unexpected icu name: %s", e.Name)
	}
	if _, ok := pl.Lookup("no_such_code"); ok {
		t.Fatal("expected lookup miss for unknown code")
	}
}

type mockRepo struct {
	prices map[string]decimal.Decimal
}

func (m *mockRepo) GetPrices(_ context.Context) (map[string]decimal.Decimal, error) {
	return m.prices, nil
}

func (m *mockRepo) UpsertPrices(_ context.Context, prices map[string]decimal.Decimal) error {
	for code, p := range prices {
		m.prices[code] = p
	}
	return nil
}

func TestServiceUpdate(t *testing.T) {
	repo := &mockRepo{prices: map[string]decimal.Decimal{"icu": decimal.NewFromInt(4000)}}
	svc := NewService(repo)

	pl, err := svc.Update(context.Background(), map[string]decimal.Decimal{
		"icu":      decimal.NewFromInt(5000),
		"dressing": decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, _ := pl.Lookup("icu")
	if !e.UnitPrice.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected icu price 5000, got %s", e.UnitPrice)
	}
}

func TestServiceUpdate_RejectsUnknownCode(t *testing.T) {
	svc := NewService(&mockRepo{prices: map[string]decimal.Decimal{}})

	_, err := svc.Update(context.Background(), map[string]decimal.Decimal{
		"no_such_code": decimal.NewFromInt(10),
	})
	if err == nil {
		t.Fatal("expected error for unknown code")
	}
}

func TestServiceUpdate_RejectsNegativePrice(t *testing.T) {
	svc := NewService(&mockRepo{prices: map[string]decimal.Decimal{}})

	_, err := svc.Update(context.Background(), map[string]decimal.Decimal{
		"icu": decimal.NewFromInt(-1),
	})
	if err == nil {
		t.Fatal("expected error for negative price")
	}
}
