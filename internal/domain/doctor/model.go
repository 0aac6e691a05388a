package doctor

import (
	"time"

	"github.com/shopspring/decimal"
)

// Doctor maps to the doctors table.
type Doctor struct {
	ID                 int64            `db:"id" json:"id"`
	FullName           string           `db:"full_name" json:"full_name"`
	Gender             *string          `db:"gender" json:"gender,omitempty"`
	ContactPrimary     *string          `db:"contact_primary" json:"contact_primary,omitempty"`
	Email              *string          `db:"email" json:"email,omitempty"`
	Qualification      *string          `db:"qualification" json:"qualification,omitempty"`
	Specialization     *string          `db:"specialization" json:"specialization,omitempty"`
	RegistrationNumber string           `db:"registration_number" json:"registration_number"`
	Department         *string          `db:"department" json:"department,omitempty"`
	DoctorType         *string          `db:"doctor_type" json:"doctor_type,omitempty"`
	OPDFeeInitial      *decimal.Decimal `db:"opd_fee_initial" json:"opd_fee_initial,omitempty"`
	OPDFeeFollowup     *decimal.Decimal `db:"opd_fee_followup" json:"opd_fee_followup,omitempty"`
	IPDVisitCharge     *decimal.Decimal `db:"ipd_visit_charge" json:"ipd_visit_charge,omitempty"`
	OPDDays            *string          `db:"opd_days" json:"opd_days,omitempty"`
	OPDTimings         *string          `db:"opd_timings" json:"opd_timings,omitempty"`
	Status             *string          `db:"status" json:"status,omitempty"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
}
