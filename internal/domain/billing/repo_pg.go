package billing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meddesk/meddesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func connFor(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// =========== Charge entry repository ===========

type entryRepoPG struct{ pool *pgxpool.Pool }

func NewChargeEntryRepoPG(pool *pgxpool.Pool) ChargeEntryRepository { return &entryRepoPG{pool: pool} }

const entryCols = `id, admission_id, patient_id, patient_name, billing_type,
	charges_json, subtotal, discount, tax, total_amount, status, created_at, updated_at`

func scanEntry(row pgx.Row) (*ChargeEntry, error) {
	var e ChargeEntry
	err := row.Scan(&e.ID, &e.AdmissionID, &e.PatientID, &e.PatientName, &e.BillingType,
		&e.ChargesJSON, &e.Subtotal, &e.Discount, &e.Tax, &e.TotalAmount, &e.Status,
		&e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *entryRepoPG) Create(ctx context.Context, e *ChargeEntry) error {
	return connFor(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO charge_entries (admission_id, patient_id, patient_name, billing_type,
			charges_json, subtotal, discount, tax, total_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`,
		e.AdmissionID, e.PatientID, e.PatientName, e.BillingType,
		e.ChargesJSON, e.Subtotal, e.Discount, e.Tax, e.TotalAmount, e.Status).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *entryRepoPG) GetByID(ctx context.Context, id int64) (*ChargeEntry, error) {
	return scanEntry(connFor(ctx, r.pool).QueryRow(ctx, `SELECT `+entryCols+` FROM charge_entries WHERE id = $1`, id))
}

func (r *entryRepoPG) ListByAdmission(ctx context.Context, admissionID int64) ([]*ChargeEntry, error) {
	rows, err := connFor(ctx, r.pool).Query(ctx, `SELECT `+entryCols+` FROM charge_entries WHERE admission_id = $1 ORDER BY created_at DESC`, admissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ChargeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *entryRepoPG) List(ctx context.Context, limit, offset int) ([]*ChargeEntry, int, error) {
	var total int
	if err := connFor(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM charge_entries`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := connFor(ctx, r.pool).Query(ctx, `SELECT `+entryCols+` FROM charge_entries ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ChargeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, nil
}

func (r *entryRepoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := connFor(ctx, r.pool).Exec(ctx, `UPDATE charge_entries SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

// =========== Bill repository ===========

type billRepoPG struct{ pool *pgxpool.Pool }

func NewBillRepoPG(pool *pgxpool.Pool) BillRepository { return &billRepoPG{pool: pool} }

const billCols = `id, bill_number, patient_id, patient_name, admission_id, billing_date, billing_type,
	charges_json, subtotal, discount, tax, total_amount,
	payment_status, payment_mode, payment_reference, notes, bill_status, created_at, updated_at`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.BillNumber, &b.PatientID, &b.PatientName, &b.AdmissionID, &b.BillingDate, &b.BillingType,
		&b.ChargesJSON, &b.Subtotal, &b.Discount, &b.Tax, &b.TotalAmount,
		&b.PaymentStatus, &b.PaymentMode, &b.PaymentReference, &b.Notes, &b.BillStatus,
		&b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

// Create inserts the bill, then stamps its bill number derived from
// the assigned id. Callers run this inside a transaction.
func (r *billRepoPG) Create(ctx context.Context, b *Bill) error {
	conn := connFor(ctx, r.pool)
	err := conn.QueryRow(ctx, `
		INSERT INTO bills (bill_number, patient_id, patient_name, admission_id, billing_date, billing_type,
			charges_json, subtotal, discount, tax, total_amount,
			payment_status, payment_mode, payment_reference, notes, bill_status)
		VALUES ('',$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at, updated_at`,
		b.PatientID, b.PatientName, b.AdmissionID, b.BillingDate, b.BillingType,
		b.ChargesJSON, b.Subtotal, b.Discount, b.Tax, b.TotalAmount,
		b.PaymentStatus, b.PaymentMode, b.PaymentReference, b.Notes, b.BillStatus).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}
	b.BillNumber = fmt.Sprintf("BILL%06d", b.ID)
	_, err = conn.Exec(ctx, `UPDATE bills SET bill_number = $2 WHERE id = $1`, b.ID, b.BillNumber)
	return err
}

func (r *billRepoPG) GetByID(ctx context.Context, id int64) (*Bill, error) {
	return scanBill(connFor(ctx, r.pool).QueryRow(ctx, `SELECT `+billCols+` FROM bills WHERE id = $1`, id))
}

func (r *billRepoPG) Update(ctx context.Context, b *Bill) error {
	_, err := connFor(ctx, r.pool).Exec(ctx, `
		UPDATE bills SET charges_json=$2, subtotal=$3, discount=$4, tax=$5, total_amount=$6,
			payment_status=$7, payment_mode=$8, payment_reference=$9, notes=$10, bill_status=$11,
			updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.ChargesJSON, b.Subtotal, b.Discount, b.Tax, b.TotalAmount,
		b.PaymentStatus, b.PaymentMode, b.PaymentReference, b.Notes, b.BillStatus)
	return err
}

func (r *billRepoPG) ListByAdmission(ctx context.Context, admissionID int64) ([]*Bill, error) {
	rows, err := connFor(ctx, r.pool).Query(ctx, `SELECT `+billCols+` FROM bills WHERE admission_id = $1 ORDER BY billing_date DESC, id DESC`, admissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *billRepoPG) List(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	var total int
	if err := connFor(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM bills`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := connFor(ctx, r.pool).Query(ctx, `SELECT `+billCols+` FROM bills ORDER BY billing_date DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, nil
}

func (r *billRepoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := connFor(ctx, r.pool).Exec(ctx, `UPDATE bills SET bill_status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}
