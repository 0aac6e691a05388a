package opd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Visit maps to the opd_visits table. Walk-in visits carry patient
// details inline rather than referencing a registered patient record.
type Visit struct {
	ID              int64            `db:"id" json:"id"`
	PatientName     string           `db:"patient_name" json:"patient_name"`
	Age             *string          `db:"age" json:"age,omitempty"`
	Gender          *string          `db:"gender" json:"gender,omitempty"`
	MobileNumber    *string          `db:"mobile_number" json:"mobile_number,omitempty"`
	VisitDateTime   time.Time        `db:"visit_date_time" json:"visit_date_time"`
	Department      *string          `db:"department" json:"department,omitempty"`
	DoctorName      string           `db:"doctor_name" json:"doctor_name"`
	VisitType       *string          `db:"visit_type" json:"visit_type,omitempty"`
	ChiefComplaint  *string          `db:"chief_complaint" json:"chief_complaint,omitempty"`
	Diagnosis       *string          `db:"diagnosis" json:"diagnosis,omitempty"`
	ConsultationFee decimal.Decimal  `db:"consultation_fee" json:"consultation_fee"`
	Discount        decimal.Decimal  `db:"discount" json:"discount"`
	PaymentMethod   *string          `db:"payment_method" json:"payment_method,omitempty"`
	BillNumber      string           `db:"bill_number" json:"bill_number"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// Token is the queue token printed on the OPD slip.
func (v *Visit) Token() string {
	return fmt.Sprintf("OPD%05d", v.ID)
}

// Payable is the consultation fee after discount.
func (v *Visit) Payable() decimal.Decimal {
	return v.ConsultationFee.Sub(v.Discount)
}
