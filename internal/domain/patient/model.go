package patient

import (
	"fmt"
	"time"
)

// Patient maps to the patients table. It carries the front-desk registration
// record: demographics, contact details, emergency contact, and the medical
// background captured at registration time.
type Patient struct {
	ID                 int64     `db:"id" json:"id"`
	FullName           string    `db:"full_name" json:"full_name"`
	Gender             *string   `db:"gender" json:"gender,omitempty"`
	DOB                *string   `db:"dob" json:"dob,omitempty"`
	Age                *string   `db:"age" json:"age,omitempty"`
	BloodGroup         *string   `db:"blood_group" json:"blood_group,omitempty"`
	MaritalStatus      *string   `db:"marital_status" json:"marital_status,omitempty"`
	MobilePrimary      string    `db:"mobile_primary" json:"mobile_primary"`
	MobileAlternate    *string   `db:"mobile_alternate" json:"mobile_alternate,omitempty"`
	Email              *string   `db:"email" json:"email,omitempty"`
	AddressPermanent   *string   `db:"address_permanent" json:"address_permanent,omitempty"`
	AddressLocal       *string   `db:"address_local" json:"address_local,omitempty"`
	AadharNumber       *string   `db:"aadhar_number" json:"aadhar_number,omitempty"`
	EmergencyName      *string   `db:"emergency_name" json:"emergency_name,omitempty"`
	EmergencyRelation  *string   `db:"emergency_relationship" json:"emergency_relationship,omitempty"`
	EmergencyMobile    *string   `db:"emergency_mobile" json:"emergency_mobile,omitempty"`
	Allergies          *string   `db:"allergies" json:"allergies,omitempty"`
	ExistingConditions *string   `db:"existing_conditions" json:"existing_conditions,omitempty"`
	CurrentMedication  *string   `db:"current_medication" json:"current_medication,omitempty"`
	BillingType        *string   `db:"billing_type" json:"billing_type,omitempty"`
	InsuranceProvider  *string   `db:"insurance_provider" json:"insurance_provider,omitempty"`
	PolicyNumber       *string   `db:"policy_number" json:"policy_number,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// HospitalID renders the patient's MRN, e.g. MRN000042.
func (p *Patient) HospitalID() string {
	return fmt.Sprintf("MRN%06d", p.ID)
}
