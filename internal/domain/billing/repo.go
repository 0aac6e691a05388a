package billing

import (
	"context"
)

// ChargeEntryRepository stores saved charge batches.
type ChargeEntryRepository interface {
	Create(ctx context.Context, e *ChargeEntry) error
	GetByID(ctx context.Context, id int64) (*ChargeEntry, error)
	ListByAdmission(ctx context.Context, admissionID int64) ([]*ChargeEntry, error)
	List(ctx context.Context, limit, offset int) ([]*ChargeEntry, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// BillRepository stores bills.
type BillRepository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id int64) (*Bill, error)
	Update(ctx context.Context, b *Bill) error
	ListByAdmission(ctx context.Context, admissionID int64) ([]*Bill, error)
	List(ctx context.Context, limit, offset int) ([]*Bill, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
