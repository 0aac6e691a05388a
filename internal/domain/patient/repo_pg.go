package patient

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

const patientCols = `id, full_name, gender, dob, age, blood_group, marital_status,
	mobile_primary, mobile_alternate, email, address_permanent, address_local,
	aadhar_number, emergency_name, emergency_relationship, emergency_mobile,
	allergies, existing_conditions, current_medication,
	billing_type, insurance_provider, policy_number, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.Gender, &p.DOB, &p.Age, &p.BloodGroup, &p.MaritalStatus,
		&p.MobilePrimary, &p.MobileAlternate, &p.Email, &p.AddressPermanent, &p.AddressLocal,
		&p.AadharNumber, &p.EmergencyName, &p.EmergencyRelation, &p.EmergencyMobile,
		&p.Allergies, &p.ExistingConditions, &p.CurrentMedication,
		&p.BillingType, &p.InsuranceProvider, &p.PolicyNumber, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (full_name, gender, dob, age, blood_group, marital_status,
			mobile_primary, mobile_alternate, email, address_permanent, address_local,
			aadhar_number, emergency_name, emergency_relationship, emergency_mobile,
			allergies, existing_conditions, current_medication,
			billing_type, insurance_provider, policy_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING id, created_at, updated_at`,
		p.FullName, p.Gender, p.DOB, p.Age, p.BloodGroup, p.MaritalStatus,
		p.MobilePrimary, p.MobileAlternate, p.Email, p.AddressPermanent, p.AddressLocal,
		p.AadharNumber, p.EmergencyName, p.EmergencyRelation, p.EmergencyMobile,
		p.Allergies, p.ExistingConditions, p.CurrentMedication,
		p.BillingType, p.InsuranceProvider, p.PolicyNumber).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET full_name=$2, gender=$3, dob=$4, age=$5, blood_group=$6, marital_status=$7,
			mobile_primary=$8, mobile_alternate=$9, email=$10, address_permanent=$11, address_local=$12,
			aadhar_number=$13, emergency_name=$14, emergency_relationship=$15, emergency_mobile=$16,
			allergies=$17, existing_conditions=$18, current_medication=$19,
			billing_type=$20, insurance_provider=$21, policy_number=$22, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.Gender, p.DOB, p.Age, p.BloodGroup, p.MaritalStatus,
		p.MobilePrimary, p.MobileAlternate, p.Email, p.AddressPermanent, p.AddressLocal,
		p.AadharNumber, p.EmergencyName, p.EmergencyRelation, p.EmergencyMobile,
		p.Allergies, p.ExistingConditions, p.CurrentMedication,
		p.BillingType, p.InsuranceProvider, p.PolicyNumber)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	// Matches the id, name, MRN display form, or primary mobile.
	where := `WHERE id::text ILIKE $1
		OR full_name ILIKE $1
		OR 'MRN' || lpad(id::text, 6, '0') ILIKE $1
		OR mobile_primary ILIKE $1`
	pattern := "%" + query + "%"

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients `+where+` ORDER BY id DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
