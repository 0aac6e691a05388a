package doctor

import (
	"context"

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

const doctorCols = `id, full_name, gender, contact_primary, email,
	qualification, specialization, registration_number, department, doctor_type,
	opd_fee_initial, opd_fee_followup, ipd_visit_charge,
	opd_days, opd_timings, status, created_at, updated_at`

func (r *repoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FullName, &d.Gender, &d.ContactPrimary, &d.Email,
		&d.Qualification, &d.Specialization, &d.RegistrationNumber, &d.Department, &d.DoctorType,
		&d.OPDFeeInitial, &d.OPDFeeFollowup, &d.IPDVisitCharge,
		&d.OPDDays, &d.OPDTimings, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (full_name, gender, contact_primary, email,
			qualification, specialization, registration_number, department, doctor_type,
			opd_fee_initial, opd_fee_followup, ipd_visit_charge,
			opd_days, opd_timings, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at, updated_at`,
		d.FullName, d.Gender, d.ContactPrimary, d.Email,
		d.Qualification, d.Specialization, d.RegistrationNumber, d.Department, d.DoctorType,
		d.OPDFeeInitial, d.OPDFeeFollowup, d.IPDVisitCharge,
		d.OPDDays, d.OPDTimings, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET full_name=$2, gender=$3, contact_primary=$4, email=$5,
			qualification=$6, specialization=$7, registration_number=$8, department=$9, doctor_type=$10,
			opd_fee_initial=$11, opd_fee_followup=$12, ipd_visit_charge=$13,
			opd_days=$14, opd_timings=$15, status=$16, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.FullName, d.Gender, d.ContactPrimary, d.Email,
		d.Qualification, d.Specialization, d.RegistrationNumber, d.Department, d.DoctorType,
		d.OPDFeeInitial, d.OPDFeeFollowup, d.IPDVisitCharge,
		d.OPDDays, d.OPDTimings, d.Status)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Doctor, int, error) {
	where := `WHERE id::text ILIKE $1
		OR full_name ILIKE $1
		OR registration_number ILIKE $1
		OR contact_primary ILIKE $1`
	pattern := "%" + query + "%"

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctors `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctors `+where+` ORDER BY id DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}
