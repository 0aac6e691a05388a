package opd

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type mockRepo struct {
	items  map[int64]*Visit
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[int64]*Visit), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, v *Visit) error {
	v.ID = m.nextID
	m.nextID++
	v.BillNumber = fmt.Sprintf("BILL%05d", v.ID)
	m.items[v.ID] = v
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Visit, error) {
	v, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("visit %d not found", id)
	}
	return v, nil
}

func (m *mockRepo) Update(_ context.Context, v *Visit) error {
	if _, ok := m.items[v.ID]; !ok {
		return fmt.Errorf("visit %d not found", v.ID)
	}
	m.items[v.ID] = v
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Visit, int, error) {
	var items []*Visit
	for _, v := range m.items {
		items = append(items, v)
	}
	return items, len(items), nil
}

func (m *mockRepo) Search(_ context.Context, query string, limit, offset int) ([]*Visit, int, error) {
	var items []*Visit
	for _, v := range m.items {
		if strings.Contains(strings.ToLower(v.PatientName), strings.ToLower(query)) ||
			strings.Contains(v.BillNumber, query) {
			items = append(items, v)
		}
	}
	return items, len(items), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(nil, repo), repo
}

func newVisit() *Visit {
	return &Visit{
		PatientName:     "Sunita Deshmukh",
		DoctorName:      "Dr. Asha Verma",
		VisitDateTime:   time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
		ConsultationFee: decimal.NewFromInt(500),
		Discount:        decimal.NewFromInt(50),
	}
}

func TestCreateVisit(t *testing.T) {
	svc, _ := newTestService()

	v := newVisit()
	if err := svc.Create(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.BillNumber != "BILL00001" {
		t.Fatalf("unexpected bill number: %s", v.BillNumber)
	}
	if v.Token() != "OPD00001" {
		t.Fatalf("unexpected token: %s", v.Token())
	}
}

func TestCreateVisit_RequiresPatientName(t *testing.T) {
	svc, _ := newTestService()

	v := newVisit()
	v.PatientName = ""
	if err := svc.Create(context.Background(), v); err == nil {
		t.Fatal("expected error for missing patient_name")
	}
}

func TestCreateVisit_RequiresDoctorName(t *testing.T) {
	svc, _ := newTestService()

	v := newVisit()
	v.DoctorName = ""
	if err := svc.Create(context.Background(), v); err == nil {
		t.Fatal("expected error for missing doctor_name")
	}
}

func TestCreateVisit_DiscountCannotExceedFee(t *testing.T) {
	svc, _ := newTestService()

	v := newVisit()
	v.Discount = decimal.NewFromInt(600)
	if err := svc.Create(context.Background(), v); err == nil {
		t.Fatal("expected error for discount above consultation fee")
	}
}

func TestVisitPayable(t *testing.T) {
	v := newVisit()
	if got := v.Payable(); !got.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected payable 450, got %s", got)
	}
}

func TestSearchVisits_ByBillNumber(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Create(context.Background(), newVisit()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := newVisit()
	second.PatientName = "Ramesh Pawar"
	if err := svc.Create(context.Background(), second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, total, err := svc.Search(context.Background(), "BILL00002", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || items[0].PatientName != "Ramesh Pawar" {
		t.Fatalf("unexpected search result: total=%d", total)
	}
}
