package admission

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

const admissionCols = `id, patient_id, patient_name, admission_date_time,
	ward, room_type, bed_number, admitting_consultant, provisional_diagnosis,
	discharge_date_time, discharge_type, final_diagnosis, condition_at_discharge,
	followup_date, status, created_at, updated_at`

func (r *repoPG) scanAdmission(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(&a.ID, &a.PatientID, &a.PatientName, &a.AdmissionDateTime,
		&a.Ward, &a.RoomType, &a.BedNumber, &a.AdmittingConsultant, &a.ProvisionalDiagnosis,
		&a.DischargeDateTime, &a.DischargeType, &a.FinalDiagnosis, &a.ConditionAtDischarge,
		&a.FollowupDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Admission) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO admissions (patient_id, patient_name, admission_date_time,
			ward, room_type, bed_number, admitting_consultant, provisional_diagnosis, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at`,
		a.PatientID, a.PatientName, a.AdmissionDateTime,
		a.Ward, a.RoomType, a.BedNumber, a.AdmittingConsultant, a.ProvisionalDiagnosis, a.Status).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Admission, error) {
	return r.scanAdmission(r.conn(ctx).QueryRow(ctx, `SELECT `+admissionCols+` FROM admissions WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Admission) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE admissions SET patient_id=$2, patient_name=$3, admission_date_time=$4,
			ward=$5, room_type=$6, bed_number=$7, admitting_consultant=$8, provisional_diagnosis=$9,
			discharge_date_time=$10, discharge_type=$11, final_diagnosis=$12, condition_at_discharge=$13,
			followup_date=$14, status=$15, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.PatientName, a.AdmissionDateTime,
		a.Ward, a.RoomType, a.BedNumber, a.AdmittingConsultant, a.ProvisionalDiagnosis,
		a.DischargeDateTime, a.DischargeType, a.FinalDiagnosis, a.ConditionAtDischarge,
		a.FollowupDate, a.Status)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM admissions`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+admissionCols+` FROM admissions ORDER BY admission_date_time DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total, r.scanAdmission)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Admission, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+admissionCols+` FROM admissions WHERE patient_id = $1 ORDER BY admission_date_time DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Admission
	for rows.Next() {
		a, err := r.scanAdmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

func (r *repoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Admission, int, error) {
	where := `WHERE patient_name ILIKE $1
		OR 'ADM' || lpad(id::text, 5, '0') ILIKE $1
		OR admitting_consultant ILIKE $1
		OR ward ILIKE $1`
	pattern := "%" + query + "%"

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM admissions `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+admissionCols+` FROM admissions `+where+` ORDER BY admission_date_time DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total, r.scanAdmission)
}

func collect(rows pgx.Rows, total int, scan func(pgx.Row) (*Admission, error)) ([]*Admission, int, error) {
	var items []*Admission
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
