package admission

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

type mockRepo struct {
	items  map[int64]*Admission
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[int64]*Admission), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, a *Admission) error {
	a.ID = m.nextID
	m.nextID++
	m.items[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Admission, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("admission %d not found", id)
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Admission) error {
	if _, ok := m.items[a.ID]; !ok {
		return fmt.Errorf("admission %d not found", a.ID)
	}
	m.items[a.ID] = a
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Admission, int, error) {
	var items []*Admission
	for _, a := range m.items {
		items = append(items, a)
	}
	return items, len(items), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID int64) ([]*Admission, error) {
	var items []*Admission
	for _, a := range m.items {
		if a.PatientID != nil && *a.PatientID == patientID {
			items = append(items, a)
		}
	}
	return items, nil
}

func (m *mockRepo) Search(_ context.Context, query string, limit, offset int) ([]*Admission, int, error) {
	var items []*Admission
	for _, a := range m.items {
		if strings.Contains(strings.ToLower(a.PatientName), strings.ToLower(query)) ||
			strings.Contains(a.DisplayID(), query) {
			items = append(items, a)
		}
	}
	return items, len(items), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func newAdmission() *Admission {
	return &Admission{
		PatientName:       "Sunita Deshmukh",
		AdmissionDateTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateAdmission(t *testing.T) {
	svc, _ := newTestService()

	a := newAdmission()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusAdmitted {
		t.Fatalf("expected status %s, got %s", StatusAdmitted, a.Status)
	}
	if a.DisplayID() != "ADM00001" {
		t.Fatalf("unexpected display id: %s", a.DisplayID())
	}
}

func TestCreateAdmission_RequiresPatientName(t *testing.T) {
	svc, _ := newTestService()

	a := newAdmission()
	a.PatientName = ""
	if err := svc.Create(context.Background(), a); err == nil {
		t.Fatal("expected error for missing patient_name")
	}
}

func TestCreateAdmission_RequiresAdmissionDateTime(t *testing.T) {
	svc, _ := newTestService()

	a := newAdmission()
	a.AdmissionDateTime = time.Time{}
	if err := svc.Create(context.Background(), a); err == nil {
		t.Fatal("expected error for missing admission_date_time")
	}
}

func TestDischarge(t *testing.T) {
	svc, _ := newTestService()

	a := newAdmission()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	when := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	dtype := "Routine"
	got, err := svc.Discharge(context.Background(), a.ID, &Admission{
		DischargeDateTime: &when,
		DischargeType:     &dtype,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusDischarged {
		t.Fatalf("expected status %s, got %s", StatusDischarged, got.Status)
	}
	if got.DischargeDateTime == nil || !got.DischargeDateTime.Equal(when) {
		t.Fatal("discharge timestamp not recorded")
	}
}

func TestDischarge_AlreadyDischarged(t *testing.T) {
	svc, _ := newTestService()

	a := newAdmission()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	when := a.AdmissionDateTime.Add(48 * time.Hour)
	if _, err := svc.Discharge(context.Background(), a.ID, &Admission{DischargeDateTime: &when}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Discharge(context.Background(), a.ID, &Admission{DischargeDateTime: &when}); err == nil {
		t.Fatal("expected error for double discharge")
	}
}

func TestDischarge_BeforeAdmissionRejected(t *testing.T) {
	svc, _ := newTestService()

	a := newAdmission()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	when := a.AdmissionDateTime.Add(-time.Hour)
	if _, err := svc.Discharge(context.Background(), a.ID, &Admission{DischargeDateTime: &when}); err == nil {
		t.Fatal("expected error for discharge before admission")
	}
}

func TestChargeableDays(t *testing.T) {
	admitted := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"same moment", admitted, 1},
		{"under a day", admitted.Add(6 * time.Hour), 1},
		{"exactly one day", admitted.Add(24 * time.Hour), 1},
		{"one day and a second", admitted.Add(24*time.Hour + time.Second), 2},
		{"one day 23 hours", time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), 2},
		{"exactly three days", admitted.Add(72 * time.Hour), 3},
		{"three days and an hour", admitted.Add(73 * time.Hour), 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Admission{AdmissionDateTime: admitted}
			if got := a.ChargeableDays(tc.end); got != tc.want {
				t.Fatalf("expected %d days, got %d", tc.want, got)
			}
		})
	}
}

func TestChargeableDays_UsesDischargeWhenSet(t *testing.T) {
	admitted := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	discharged := admitted.Add(50 * time.Hour)
	a := &Admission{AdmissionDateTime: admitted, DischargeDateTime: &discharged}

	// now is well past discharge; the discharge timestamp must win.
	if got := a.ChargeableDays(admitted.Add(200 * time.Hour)); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
}
