package opd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meddesk/meddesk/internal/platform/db"
)

type Service struct {
	pool   *pgxpool.Pool
	visits Repository
}

func NewService(pool *pgxpool.Pool, visits Repository) *Service {
	return &Service{pool: pool, visits: visits}
}

func (s *Service) validate(v *Visit) error {
	if v.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if v.DoctorName == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if v.ConsultationFee.IsNegative() {
		return fmt.Errorf("consultation_fee cannot be negative")
	}
	if v.Discount.GreaterThan(v.ConsultationFee) {
		return fmt.Errorf("discount cannot exceed consultation fee")
	}
	return nil
}

// Create registers a walk-in visit. The insert and the bill number
// assignment run in one transaction so a slip never goes out without
// its bill number.
func (s *Service) Create(ctx context.Context, v *Visit) error {
	if err := s.validate(v); err != nil {
		return err
	}
	if s.pool == nil {
		return s.visits.Create(ctx, v)
	}
	return db.WithTx(ctx, s.pool, func(ctx context.Context) error {
		return s.visits.Create(ctx, v)
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, v *Visit) error {
	if err := s.validate(v); err != nil {
		return err
	}
	return s.visits.Update(ctx, v)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	return s.visits.List(ctx, limit, offset)
}

func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]*Visit, int, error) {
	if query == "" {
		return s.visits.List(ctx, limit, offset)
	}
	return s.visits.Search(ctx, query, limit, offset)
}
