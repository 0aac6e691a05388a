package opd

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const visitCols = `id, patient_name, age, gender, mobile_number, visit_date_time,
	department, doctor_name, visit_type, chief_complaint, diagnosis,
	consultation_fee, discount, payment_method, bill_number, created_at, updated_at`

func (r *repoPG) scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PatientName, &v.Age, &v.Gender, &v.MobileNumber, &v.VisitDateTime,
		&v.Department, &v.DoctorName, &v.VisitType, &v.ChiefComplaint, &v.Diagnosis,
		&v.ConsultationFee, &v.Discount, &v.PaymentMethod, &v.BillNumber, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	conn := r.conn(ctx)
	err := conn.QueryRow(ctx, `
		INSERT INTO opd_visits (patient_name, age, gender, mobile_number, visit_date_time,
			department, doctor_name, visit_type, chief_complaint, diagnosis,
			consultation_fee, discount, payment_method, bill_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,'')
		RETURNING id, created_at, updated_at`,
		v.PatientName, v.Age, v.Gender, v.MobileNumber, v.VisitDateTime,
		v.Department, v.DoctorName, v.VisitType, v.ChiefComplaint, v.Diagnosis,
		v.ConsultationFee, v.Discount, v.PaymentMethod).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return err
	}
	v.BillNumber = fmt.Sprintf("BILL%05d", v.ID)
	_, err = conn.Exec(ctx, `UPDATE opd_visits SET bill_number = $2 WHERE id = $1`, v.ID, v.BillNumber)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Visit, error) {
	return r.scanVisit(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM opd_visits WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE opd_visits SET patient_name=$2, age=$3, gender=$4, mobile_number=$5, visit_date_time=$6,
			department=$7, doctor_name=$8, visit_type=$9, chief_complaint=$10, diagnosis=$11,
			consultation_fee=$12, discount=$13, payment_method=$14, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.PatientName, v.Age, v.Gender, v.MobileNumber, v.VisitDateTime,
		v.Department, v.DoctorName, v.VisitType, v.ChiefComplaint, v.Diagnosis,
		v.ConsultationFee, v.Discount, v.PaymentMethod)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM opd_visits`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+visitCols+` FROM opd_visits ORDER BY visit_date_time DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Visit
	for rows.Next() {
		v, err := r.scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Visit, int, error) {
	where := `WHERE patient_name ILIKE $1
		OR doctor_name ILIKE $1
		OR bill_number ILIKE $1
		OR 'OPD' || lpad(id::text, 5, '0') ILIKE $1
		OR mobile_number ILIKE $1`
	pattern := "%" + query + "%"

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM opd_visits `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+visitCols+` FROM opd_visits `+where+` ORDER BY visit_date_time DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Visit
	for rows.Next() {
		v, err := r.scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}
