package billing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Charge entry and bill lifecycle states. Pending entries and Draft
// bills feed the next final bill; Merged marks sources already folded
// into one.
const (
	EntryStatusPending = "Pending"
	EntryStatusMerged  = "Merged"

	BillStatusDraft  = "Draft"
	BillStatusFinal  = "Final"
	BillStatusMerged = "Merged"

	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusPartial = "Partial"
)

// LineItem is one priced charge on an entry or a bill.
type LineItem struct {
	ChargeCode string          `json:"charge_code"`
	ChargeName string          `json:"charge_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
}

// MarshalJSON renders quantities and amounts as bare JSON numbers, the
// format stored rows use in charges_json. Decimal rendering everywhere
// else keeps the library default.
func (li LineItem) MarshalJSON() ([]byte, error) {
	type wire struct {
		ChargeCode string          `json:"charge_code"`
		ChargeName string          `json:"charge_name"`
		Quantity   json.RawMessage `json:"quantity"`
		UnitPrice  json.RawMessage `json:"unit_price"`
		Total      json.RawMessage `json:"total"`
	}
	return json.Marshal(wire{
		ChargeCode: li.ChargeCode,
		ChargeName: li.ChargeName,
		Quantity:   json.RawMessage(li.Quantity.String()),
		UnitPrice:  json.RawMessage(li.UnitPrice.String()),
		Total:      json.RawMessage(li.Total.String()),
	})
}

// ChargeEntry is a batch of charges saved against an admission before
// a final bill is generated.
type ChargeEntry struct {
	ID          int64           `db:"id" json:"id"`
	AdmissionID int64           `db:"admission_id" json:"admission_id"`
	PatientID   *int64          `db:"patient_id" json:"patient_id,omitempty"`
	PatientName string          `db:"patient_name" json:"patient_name"`
	BillingType string          `db:"billing_type" json:"billing_type"`
	ChargesJSON string          `db:"charges_json" json:"-"`
	Lines       []LineItem      `json:"charges"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount    decimal.Decimal `db:"discount" json:"discount"`
	Tax         decimal.Decimal `db:"tax" json:"tax"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// EntryNumber is the reference shown on the save confirmation.
func (e *ChargeEntry) EntryNumber() string {
	return fmt.Sprintf("CHG%05d", e.ID)
}

// Bill is an invoice for one admission.
type Bill struct {
	ID               int64           `db:"id" json:"id"`
	BillNumber       string          `db:"bill_number" json:"bill_number"`
	PatientID        *int64          `db:"patient_id" json:"patient_id,omitempty"`
	PatientName      string          `db:"patient_name" json:"patient_name"`
	AdmissionID      int64           `db:"admission_id" json:"admission_id"`
	BillingDate      time.Time       `db:"billing_date" json:"billing_date"`
	BillingType      string          `db:"billing_type" json:"billing_type"`
	ChargesJSON      string          `db:"charges_json" json:"-"`
	Lines            []LineItem      `json:"charges"`
	Subtotal         decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount         decimal.Decimal `db:"discount" json:"discount"`
	Tax              decimal.Decimal `db:"tax" json:"tax"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaymentStatus    string          `db:"payment_status" json:"payment_status"`
	PaymentMode      *string         `db:"payment_mode" json:"payment_mode,omitempty"`
	PaymentReference *string         `db:"payment_reference" json:"payment_reference,omitempty"`
	Notes            *string         `db:"notes" json:"notes,omitempty"`
	BillStatus       string          `db:"bill_status" json:"bill_status"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// EncodeLines renders line items as the charges_json wire array.
func EncodeLines(lines []LineItem) (string, error) {
	if lines == nil {
		lines = []LineItem{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeLines parses a stored charges_json array.
func DecodeLines(raw string) ([]LineItem, error) {
	if raw == "" {
		return nil, nil
	}
	var lines []LineItem
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ValidationError marks a rejected billing operation. The message is
// shown to the front desk as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
