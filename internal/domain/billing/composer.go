package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meddesk/meddesk/internal/domain/chargemaster"
)

// buildLines turns a quantity selection into priced line items,
// walking the catalog in form order. Registration and room/bed codes
// already applied to the admission are collected as duplicates and the
// whole selection is rejected once every offender is known. Nursing
// care is clamped to the days still unbilled. Codes outside the
// catalog are silently ignored.
func buildLines(prices *chargemaster.PriceList, quantities map[string]int, state *BillingState, chargeableDays int) ([]LineItem, error) {
	var lines []LineItem
	var duplicates []string

	for _, code := range chargemaster.CodeOrder() {
		qty := quantities[code]
		if qty <= 0 {
			continue
		}

		if contains(chargemaster.RegistrationCodes, code) && state.UsedRegistration[code] {
			duplicates = append(duplicates, chargemaster.Humanize(code))
			continue
		}
		if contains(chargemaster.RoomBedCodes, code) && state.UsedRoomBed[code] {
			duplicates = append(duplicates, chargemaster.Humanize(code))
			continue
		}
		if code == chargemaster.NursingCareCode {
			available := chargeableDays - state.NursingDaysUsed()
			if qty > available {
				if available <= 0 {
					duplicates = append(duplicates, fmt.Sprintf("Nursing Care Charge (already applied for all %d days)", chargeableDays))
					continue
				}
				qty = available
			}
		}

		entry, ok := prices.Lookup(code)
		if !ok {
			continue
		}
		q := decimal.NewFromInt(int64(qty))
		lines = append(lines, LineItem{
			ChargeCode: code,
			ChargeName: chargemaster.Humanize(code),
			Quantity:   q,
			UnitPrice:  entry.UnitPrice,
			Total:      entry.UnitPrice.Mul(q),
		})
	}

	if len(duplicates) > 0 {
		return nil, validationErrorf("The following charges have already been applied and cannot be added again: %s", strings.Join(duplicates, ", "))
	}
	return lines, nil
}

// mergeLines combines line item groups by charge code, in order of
// first appearance. Quantities and totals accumulate; the first unit
// price seen for a code wins.
func mergeLines(groups ...[]LineItem) []LineItem {
	var order []string
	byCode := make(map[string]*LineItem)

	for _, group := range groups {
		for _, line := range group {
			if line.ChargeCode == "" {
				continue
			}
			if existing, ok := byCode[line.ChargeCode]; ok {
				existing.Quantity = existing.Quantity.Add(line.Quantity)
				existing.Total = existing.Total.Add(line.Total)
				continue
			}
			merged := line
			if merged.ChargeName == "" {
				merged.ChargeName = chargemaster.Humanize(line.ChargeCode)
			}
			byCode[line.ChargeCode] = &merged
			order = append(order, line.ChargeCode)
		}
	}

	out := make([]LineItem, 0, len(order))
	for _, code := range order {
		out = append(out, *byCode[code])
	}
	return out
}

func sumLines(lines []LineItem) decimal.Decimal {
	var subtotal decimal.Decimal
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total)
	}
	return subtotal
}
