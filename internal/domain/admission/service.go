package admission

import (
	"context"
	"fmt"
)

type Service struct {
	admissions Repository
}

func NewService(admissions Repository) *Service {
	return &Service{admissions: admissions}
}

func (s *Service) Create(ctx context.Context, a *Admission) error {
	if a.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if a.AdmissionDateTime.IsZero() {
		return fmt.Errorf("admission_date_time is required")
	}
	if a.Status == "" {
		a.Status = StatusAdmitted
	}
	return s.admissions.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Admission, error) {
	return s.admissions.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Admission) error {
	if a.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if a.AdmissionDateTime.IsZero() {
		return fmt.Errorf("admission_date_time is required")
	}
	return s.admissions.Update(ctx, a)
}

// Discharge closes an admission. The discharge timestamp must not
// precede the admission timestamp.
func (s *Service) Discharge(ctx context.Context, id int64, d *Admission) (*Admission, error) {
	a, err := s.admissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusDischarged {
		return nil, fmt.Errorf("admission %s is already discharged", a.DisplayID())
	}
	if d.DischargeDateTime == nil {
		return nil, fmt.Errorf("discharge_date_time is required")
	}
	if d.DischargeDateTime.Before(a.AdmissionDateTime) {
		return nil, fmt.Errorf("discharge_date_time cannot precede admission_date_time")
	}
	a.DischargeDateTime = d.DischargeDateTime
	a.DischargeType = d.DischargeType
	a.FinalDiagnosis = d.FinalDiagnosis
	a.ConditionAtDischarge = d.ConditionAtDischarge
	a.FollowupDate = d.FollowupDate
	a.Status = StatusDischarged
	if err := s.admissions.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	return s.admissions.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Admission, error) {
	return s.admissions.ListByPatient(ctx, patientID)
}

func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]*Admission, int, error) {
	if query == "" {
		return s.admissions.List(ctx, limit, offset)
	}
	return s.admissions.Search(ctx, query, limit, offset)
}
