package admission

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, a *Admission) error
	GetByID(ctx context.Context, id int64) (*Admission, error)
	Update(ctx context.Context, a *Admission) error
	List(ctx context.Context, limit, offset int) ([]*Admission, int, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Admission, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*Admission, int, error)
}
