package billing

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/meddesk/meddesk/internal/domain/chargemaster"
)

// BillingState is everything the composer needs to know about an
// admission's charge history: the saved entries, the surviving bills,
// and which one-shot charges have already been applied.
type BillingState struct {
	ChargeEntries  []*ChargeEntry `json:"charge_entries"`
	PendingEntries []*ChargeEntry `json:"pending_charge_entries"`
	Bills          []*Bill        `json:"existing_bills"`

	UsedRegistration map[string]bool `json:"used_registration_charges"`
	UsedRoomBed      map[string]bool `json:"used_room_bed_charges"`
	NursingDays      decimal.Decimal `json:"total_nursing_care_days"`
}

// NursingDaysUsed truncates the accumulated nursing total to whole
// days, matching how the limit is enforced.
func (s *BillingState) NursingDaysUsed() int {
	return int(s.NursingDays.IntPart())
}

// DraftBills returns surviving drafts, most recent first.
func (s *BillingState) DraftBills() []*Bill {
	var drafts []*Bill
	for _, b := range s.Bills {
		if b.BillStatus == BillStatusDraft {
			drafts = append(drafts, b)
		}
	}
	return drafts
}

// FinalBill returns the final bill for the admission, if one exists.
func (s *BillingState) FinalBill() *Bill {
	for _, b := range s.Bills {
		if b.BillStatus == BillStatusFinal {
			return b
		}
	}
	return nil
}

// CollectState folds an admission's charge entries and bills into a
// BillingState. Every entry counts toward the usage trackers whatever
// its status; merged bills are dropped entirely and only Draft/Final
// bills count. Rows with unreadable charges_json contribute nothing
// and are logged, never surfaced as errors.
func CollectState(logger zerolog.Logger, entries []*ChargeEntry, bills []*Bill) *BillingState {
	state := &BillingState{
		UsedRegistration: make(map[string]bool),
		UsedRoomBed:      make(map[string]bool),
	}

	track := func(lines []LineItem) {
		for _, line := range lines {
			if !line.Quantity.IsPositive() {
				continue
			}
			if contains(chargemaster.RegistrationCodes, line.ChargeCode) {
				state.UsedRegistration[line.ChargeCode] = true
			}
			if contains(chargemaster.RoomBedCodes, line.ChargeCode) {
				state.UsedRoomBed[line.ChargeCode] = true
			}
			if line.ChargeCode == chargemaster.NursingCareCode {
				state.NursingDays = state.NursingDays.Add(line.Quantity)
			}
		}
	}

	for _, e := range entries {
		lines, err := DecodeLines(e.ChargesJSON)
		if err != nil {
			logger.Warn().Err(err).Int64("charge_entry_id", e.ID).Msg("unreadable charges_json on charge entry, treating as empty")
			lines = nil
		}
		e.Lines = lines
		state.ChargeEntries = append(state.ChargeEntries, e)
		if e.Status == EntryStatusPending {
			state.PendingEntries = append(state.PendingEntries, e)
		}
		track(lines)
	}

	for _, b := range bills {
		if b.BillStatus == BillStatusMerged {
			continue
		}
		lines, err := DecodeLines(b.ChargesJSON)
		if err != nil {
			logger.Warn().Err(err).Int64("bill_id", b.ID).Msg("unreadable charges_json on bill, treating as empty")
			lines = nil
		}
		b.Lines = lines
		state.Bills = append(state.Bills, b)
		if b.BillStatus == BillStatusDraft || b.BillStatus == BillStatusFinal {
			track(lines)
		}
	}

	sort.SliceStable(state.Bills, func(i, j int) bool {
		return state.Bills[i].BillingDate.After(state.Bills[j].BillingDate)
	})
	sort.SliceStable(state.ChargeEntries, func(i, j int) bool {
		return state.ChargeEntries[i].CreatedAt.After(state.ChargeEntries[j].CreatedAt)
	})

	return state
}

func contains(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
