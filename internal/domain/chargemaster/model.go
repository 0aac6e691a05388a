package chargemaster

import (
	"github.com/shopspring/decimal"
)

// Entry is one priced charge code.
type Entry struct {
	Code      string          `db:"charge_code" json:"charge_code"`
	Name      string          `json:"charge_name"`
	Section   string          `json:"section"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// PriceList is the full catalog with prices, in catalog order. Codes
// never priced default to zero.
type PriceList struct {
	entries []Entry
	byCode  map[string]int
}

// NewPriceList builds a zero-filled list in catalog order, then lays
// the known prices over it.
func NewPriceList(prices map[string]decimal.Decimal) *PriceList {
	pl := &PriceList{byCode: make(map[string]int)}
	for _, s := range Catalog {
		for _, code := range s.Codes {
			e := Entry{Code: code, Name: Humanize(code), Section: s.Key}
			if p, ok := prices[code]; ok {
				e.UnitPrice = p
			}
			pl.byCode[code] = len(pl.entries)
			pl.entries = append(pl.entries, e)
		}
	}
	return pl
}

// Entries returns the list in catalog order.
func (pl *PriceList) Entries() []Entry {
	return pl.entries
}

// Lookup returns the entry for code, or false for codes outside the
// catalog.
func (pl *PriceList) Lookup(code string) (Entry, bool) {
	i, ok := pl.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return pl.entries[i], true
}
