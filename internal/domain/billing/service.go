package billing

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/meddesk/meddesk/internal/domain/admission"
	"github.com/meddesk/meddesk/internal/domain/chargemaster"
	"github.com/meddesk/meddesk/internal/domain/patient"
	"github.com/meddesk/meddesk/internal/platform/db"
)

// AdmissionDirectory resolves admissions for day counting and
// existence checks.
type AdmissionDirectory interface {
	Get(ctx context.Context, id int64) (*admission.Admission, error)
}

// PatientDirectory resolves patient names for bill headers.
type PatientDirectory interface {
	Get(ctx context.Context, id int64) (*patient.Patient, error)
}

// PriceSource supplies the current price list.
type PriceSource interface {
	Get(ctx context.Context) (*chargemaster.PriceList, error)
}

type Service struct {
	pool       *pgxpool.Pool
	entries    ChargeEntryRepository
	bills      BillRepository
	admissions AdmissionDirectory
	patients   PatientDirectory
	prices     PriceSource
	logger     zerolog.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(pool *pgxpool.Pool, entries ChargeEntryRepository, bills BillRepository,
	admissions AdmissionDirectory, patients PatientDirectory, prices PriceSource,
	logger zerolog.Logger) *Service {
	return &Service{
		pool:       pool,
		entries:    entries,
		bills:      bills,
		admissions: admissions,
		patients:   patients,
		prices:     prices,
		logger:     logger,
		locks:      make(map[int64]*sync.Mutex),
	}
}

// ChargeSelection is a billing form submission: quantities keyed by
// charge code plus a discount and tax for this batch.
type ChargeSelection struct {
	PatientID   *int64          `json:"patient_id,omitempty"`
	AdmissionID int64           `json:"admission_id"`
	BillingType string          `json:"billing_type"`
	Quantities  map[string]int  `json:"quantities"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
}

func (s *Service) admissionLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Service) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.pool, fn)
}

func (s *Service) loadState(ctx context.Context, admissionID int64) (*BillingState, error) {
	entries, err := s.entries.ListByAdmission(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.ListByAdmission(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	return CollectState(s.logger, entries, bills), nil
}

// chargeableDays resolves how many days the admission can bill nursing
// care for. An admission that cannot be found yields zero, which makes
// any nursing selection fail as exhausted.
func (s *Service) chargeableDays(ctx context.Context, admissionID int64) int {
	a, err := s.admissions.Get(ctx, admissionID)
	if err != nil {
		return 0
	}
	return a.ChargeableDays(time.Now())
}

func (s *Service) patientName(ctx context.Context, patientID *int64) string {
	if patientID == nil {
		return ""
	}
	p, err := s.patients.Get(ctx, *patientID)
	if err != nil {
		return ""
	}
	return p.FullName
}

// SaveCharges validates the selection against the admission's charge
// history and stores it as a Pending charge entry for the next bill.
func (s *Service) SaveCharges(ctx context.Context, sel ChargeSelection) (*ChargeEntry, error) {
	if sel.AdmissionID == 0 {
		return nil, validationErrorf("Billing is only available for admitted patients. Please select an admission.")
	}

	prices, err := s.prices.Get(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.loadState(ctx, sel.AdmissionID)
	if err != nil {
		return nil, err
	}

	lines, err := buildLines(prices, sel.Quantities, state, s.chargeableDays(ctx, sel.AdmissionID))
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, validationErrorf("Please select at least one charge before saving or generating a bill.")
	}

	subtotal := sumLines(lines)
	encoded, err := EncodeLines(lines)
	if err != nil {
		return nil, err
	}

	billingType := sel.BillingType
	if billingType == "" {
		billingType = "IPD"
	}
	entry := &ChargeEntry{
		AdmissionID: sel.AdmissionID,
		PatientID:   sel.PatientID,
		PatientName: s.patientName(ctx, sel.PatientID),
		BillingType: billingType,
		ChargesJSON: encoded,
		Lines:       lines,
		Subtotal:    subtotal,
		Discount:    sel.Discount,
		Tax:         sel.Tax,
		TotalAmount: subtotal.Sub(sel.Discount).Add(sel.Tax),
		Status:      EntryStatusPending,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GenerateBill produces the admission's single Final bill. The current
// selection is validated, then folded together with every Pending
// charge entry and surviving Draft bill; the merged sources flip to
// Merged in the same transaction the bill is written in. Finalisation
// for one admission is serialised.
func (s *Service) GenerateBill(ctx context.Context, sel ChargeSelection) (*Bill, error) {
	if sel.AdmissionID == 0 {
		return nil, validationErrorf("Billing is only available for admitted patients. Please select an admission.")
	}

	lock := s.admissionLock(sel.AdmissionID)
	lock.Lock()
	defer lock.Unlock()

	prices, err := s.prices.Get(ctx)
	if err != nil {
		return nil, err
	}

	var bill *Bill
	err = s.withTx(ctx, func(ctx context.Context) error {
		state, err := s.loadState(ctx, sel.AdmissionID)
		if err != nil {
			return err
		}
		if existing := state.FinalBill(); existing != nil {
			return validationErrorf("A final bill (Bill No: %s) already exists for this admission. Only one final bill can be generated per admission.", existing.BillNumber)
		}

		lines, err := buildLines(prices, sel.Quantities, state, s.chargeableDays(ctx, sel.AdmissionID))
		if err != nil {
			return err
		}

		discount := sel.Discount
		tax := sel.Tax
		groups := make([][]LineItem, 0, len(state.PendingEntries)+2)
		for _, e := range state.PendingEntries {
			groups = append(groups, e.Lines)
			discount = discount.Add(e.Discount)
			tax = tax.Add(e.Tax)
		}
		drafts := state.DraftBills()
		for _, d := range drafts {
			groups = append(groups, d.Lines)
			discount = discount.Add(d.Discount)
			tax = tax.Add(d.Tax)
		}
		groups = append(groups, lines)

		merged := mergeLines(groups...)
		if len(merged) == 0 {
			return validationErrorf("Please select at least one charge before saving or generating a bill.")
		}

		subtotal := sumLines(merged)
		encoded, err := EncodeLines(merged)
		if err != nil {
			return err
		}

		billingType := sel.BillingType
		if billingType == "" {
			billingType = "IPD"
		}
		now := time.Now()
		bill = &Bill{
			PatientID:     sel.PatientID,
			PatientName:   s.patientName(ctx, sel.PatientID),
			AdmissionID:   sel.AdmissionID,
			BillingDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
			BillingType:   billingType,
			ChargesJSON:   encoded,
			Lines:         merged,
			Subtotal:      subtotal,
			Discount:      discount,
			Tax:           tax,
			TotalAmount:   subtotal.Sub(discount).Add(tax),
			PaymentStatus: PaymentStatusPending,
			BillStatus:    BillStatusFinal,
		}
		if err := s.bills.Create(ctx, bill); err != nil {
			return err
		}

		for _, d := range drafts {
			if d.ID == bill.ID {
				continue
			}
			if err := s.bills.UpdateStatus(ctx, d.ID, BillStatusMerged); err != nil {
				return err
			}
		}
		for _, e := range state.PendingEntries {
			if err := s.entries.UpdateStatus(ctx, e.ID, EntryStatusMerged); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBillingState reports an admission's charge history and usage
// trackers. An admission with no history yields an empty state.
func (s *Service) GetBillingState(ctx context.Context, admissionID int64) (*BillingState, error) {
	return s.loadState(ctx, admissionID)
}

func (s *Service) decodeBillLines(b *Bill) {
	lines, err := DecodeLines(b.ChargesJSON)
	if err != nil {
		s.logger.Warn().Err(err).Int64("bill_id", b.ID).Msg("unreadable charges_json on bill, treating as empty")
		lines = nil
	}
	b.Lines = lines
}

func (s *Service) decodeEntryLines(e *ChargeEntry) {
	lines, err := DecodeLines(e.ChargesJSON)
	if err != nil {
		s.logger.Warn().Err(err).Int64("charge_entry_id", e.ID).Msg("unreadable charges_json on charge entry, treating as empty")
		lines = nil
	}
	e.Lines = lines
}

func (s *Service) GetBill(ctx context.Context, id int64) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decodeBillLines(b)
	return b, nil
}

func (s *Service) ListBills(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	bills, total, err := s.bills.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, b := range bills {
		s.decodeBillLines(b)
	}
	return bills, total, nil
}

func (s *Service) ListChargeEntries(ctx context.Context, limit, offset int) ([]*ChargeEntry, int, error) {
	entries, total, err := s.entries.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, e := range entries {
		s.decodeEntryLines(e)
	}
	return entries, total, nil
}

// BillUpdate adjusts quantities on an existing bill. A line whose code
// is absent from Quantities, or mapped to zero or less, is dropped.
// Nil Discount/Tax keep the stored values.
type BillUpdate struct {
	Quantities map[string]decimal.Decimal `json:"quantities"`
	Discount   *decimal.Decimal           `json:"discount,omitempty"`
	Tax        *decimal.Decimal           `json:"tax,omitempty"`
}

// UpdateBill rewrites the bill's lines from the submitted quantities
// and recomputes its totals. Duplicate and day-limit checks do not
// apply here; the bill is being corrected, not extended.
func (s *Service) UpdateBill(ctx context.Context, id int64, upd BillUpdate) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decodeBillLines(b)

	var updated []LineItem
	for _, line := range b.Lines {
		qty, ok := upd.Quantities[line.ChargeCode]
		if !ok || !qty.IsPositive() {
			continue
		}
		line.Quantity = qty
		line.Total = line.UnitPrice.Mul(qty)
		updated = append(updated, line)
	}

	if upd.Discount != nil {
		b.Discount = *upd.Discount
	}
	if upd.Tax != nil {
		b.Tax = *upd.Tax
	}

	subtotal := sumLines(updated)
	encoded, err := EncodeLines(updated)
	if err != nil {
		return nil, err
	}
	b.Lines = updated
	b.ChargesJSON = encoded
	b.Subtotal = subtotal
	b.TotalAmount = subtotal.Sub(b.Discount).Add(b.Tax)

	if err := s.bills.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBillLine removes one line by position and recomputes totals
// with the bill's stored discount and tax.
func (s *Service) DeleteBillLine(ctx context.Context, id int64, index int) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decodeBillLines(b)

	if index < 0 || index >= len(b.Lines) {
		return nil, validationErrorf("charge index %d is out of range", index)
	}
	b.Lines = append(b.Lines[:index], b.Lines[index+1:]...)

	subtotal := sumLines(b.Lines)
	encoded, err := EncodeLines(b.Lines)
	if err != nil {
		return nil, err
	}
	b.ChargesJSON = encoded
	b.Subtotal = subtotal
	b.TotalAmount = subtotal.Sub(b.Discount).Add(b.Tax)

	if err := s.bills.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// FinalizeDraft promotes a Draft bill to Final. Bills in any other
// state pass through untouched.
func (s *Service) FinalizeDraft(ctx context.Context, id int64) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decodeBillLines(b)
	if b.BillStatus != BillStatusDraft {
		return b, nil
	}
	if err := s.bills.UpdateStatus(ctx, b.ID, BillStatusFinal); err != nil {
		return nil, err
	}
	b.BillStatus = BillStatusFinal
	return b, nil
}
