package doctor

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type mockRepo struct {
	items  map[int64]*Doctor
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[int64]*Doctor), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = m.nextID
	m.nextID++
	m.items[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Doctor, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("doctor %d not found", id)
	}
	return d, nil
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.items[d.ID]; !ok {
		return fmt.Errorf("doctor %d not found", d.ID)
	}
	m.items[d.ID] = d
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Doctor, int, error) {
	var items []*Doctor
	for _, d := range m.items {
		items = append(items, d)
	}
	return items, len(items), nil
}

func (m *mockRepo) Search(_ context.Context, query string, limit, offset int) ([]*Doctor, int, error) {
	var items []*Doctor
	for _, d := range m.items {
		if strings.Contains(strings.ToLower(d.FullName), strings.ToLower(query)) ||
			strings.Contains(d.RegistrationNumber, query) {
			items = append(items, d)
		}
	}
	return items, len(items), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func TestCreateDoctor(t *testing.T) {
	svc, repo := newTestService()

	d := &Doctor{FullName: "Dr. Asha Verma", RegistrationNumber: "MH-12345"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == 0 {
		t.Fatal("expected id to be assigned")
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 doctor, got %d", len(repo.items))
	}
}

func TestCreateDoctor_RequiresName(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Create(context.Background(), &Doctor{RegistrationNumber: "MH-12345"})
	if err == nil {
		t.Fatal("expected error for missing full_name")
	}
}

func TestCreateDoctor_RequiresRegistrationNumber(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Create(context.Background(), &Doctor{FullName: "Dr. Asha Verma"})
	if err == nil {
		t.Fatal("expected error for missing registration_number")
	}
}

func TestSearchDoctors_ByRegistrationNumber(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Create(context.Background(), &Doctor{FullName: "Dr. Asha Verma", RegistrationNumber: "MH-12345"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Create(context.Background(), &Doctor{FullName: "Dr. Ravi Iyer", RegistrationNumber: "KA-99887"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, total, err := svc.Search(context.Background(), "KA-99887", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", total)
	}
	if items[0].FullName != "Dr. Ravi Iyer" {
		t.Fatalf("unexpected match: %s", items[0].FullName)
	}
}

func TestSearchDoctors_EmptyQueryLists(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Create(context.Background(), &Doctor{FullName: "Dr. Asha Verma", RegistrationNumber: "MH-12345"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, total, err := svc.Search(context.Background(), "", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 doctor, got %d", total)
	}
}
