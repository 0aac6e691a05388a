package admission

import (
	"fmt"
	"time"
)

const (
	StatusAdmitted   = "Admitted"
	StatusDischarged = "Discharged"
)

// Admission maps to the admissions table.
type Admission struct {
	ID                   int64      `db:"id" json:"id"`
	PatientID            *int64     `db:"patient_id" json:"patient_id,omitempty"`
	PatientName          string     `db:"patient_name" json:"patient_name"`
	AdmissionDateTime    time.Time  `db:"admission_date_time" json:"admission_date_time"`
	Ward                 *string    `db:"ward" json:"ward,omitempty"`
	RoomType             *string    `db:"room_type" json:"room_type,omitempty"`
	BedNumber            *string    `db:"bed_number" json:"bed_number,omitempty"`
	AdmittingConsultant  *string    `db:"admitting_consultant" json:"admitting_consultant,omitempty"`
	ProvisionalDiagnosis *string    `db:"provisional_diagnosis" json:"provisional_diagnosis,omitempty"`
	DischargeDateTime    *time.Time `db:"discharge_date_time" json:"discharge_date_time,omitempty"`
	DischargeType        *string    `db:"discharge_type" json:"discharge_type,omitempty"`
	FinalDiagnosis       *string    `db:"final_diagnosis" json:"final_diagnosis,omitempty"`
	ConditionAtDischarge *string    `db:"condition_at_discharge" json:"condition_at_discharge,omitempty"`
	FollowupDate         *string    `db:"followup_date" json:"followup_date,omitempty"`
	Status               string     `db:"status" json:"status"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayID is the admission number shown on wristbands and bills.
func (a *Admission) DisplayID() string {
	return fmt.Sprintf("ADM%05d", a.ID)
}

// ChargeableDays counts billable days between admission and discharge,
// or until now for patients still admitted. Any part of a day past a
// whole 24-hour block counts as a full day, and a stay always bills at
// least one day.
func (a *Admission) ChargeableDays(now time.Time) int {
	end := now
	if a.DischargeDateTime != nil {
		end = *a.DischargeDateTime
	}
	d := end.Sub(a.AdmissionDateTime)
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) >= time.Second {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
