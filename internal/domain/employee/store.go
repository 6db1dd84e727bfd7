package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cryptoutil "hrflow/internal/platform/crypto"
)

type Store struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

const recordColumns = `
  employee_number, last_name, first_name, last_name_kana, first_name_kana,
  birth_date, email, COALESCE(phone, ''),
  my_number_enc, COALESCE(basic_pension_number, ''),
  COALESCE(postal_code, ''), COALESCE(address, ''), COALESCE(address_kana, ''),
  COALESCE(resident_postal_code, ''), COALESCE(resident_address, ''),
  COALESCE(health_insurance_type, ''), COALESCE(nursing_insurance_type, ''),
  COALESCE(emergency_contact_name, ''), COALESCE(emergency_contact_phone, ''),
  COALESCE(bank_name, ''), COALESCE(bank_branch, ''), COALESCE(bank_account_number, ''),
  hired_at, resignation_date, last_work_date, COALESCE(resignation_reason, ''),
  COALESCE(post_resignation_address, ''), COALESCE(post_resignation_phone, ''),
  COALESCE(post_resignation_email, ''), COALESCE(post_resignation_insurance, ''),
  created_at, updated_at`

func (s *Store) GetByNumber(ctx context.Context, employeeNumber string) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM employees
    WHERE employee_number = $1
  `, employeeNumber)

	var rec Record
	var myNumberEnc []byte
	err := row.Scan(
		&rec.EmployeeNumber, &rec.LastName, &rec.FirstName, &rec.LastNameKana, &rec.FirstNameKana,
		&rec.BirthDate, &rec.Email, &rec.Phone,
		&myNumberEnc, &rec.BasicPensionNumber,
		&rec.PostalCode, &rec.Address, &rec.AddressKana,
		&rec.ResidentPostalCode, &rec.ResidentAddress,
		&rec.HealthInsuranceType, &rec.NursingInsuranceType,
		&rec.EmergencyContactName, &rec.EmergencyContactPhone,
		&rec.BankName, &rec.BankBranch, &rec.BankAccountNumber,
		&rec.HiredAt, &rec.ResignationDate, &rec.LastWorkDate, &rec.ResignationReason,
		&rec.PostResignationAddress, &rec.PostResignationPhone,
		&rec.PostResignationEmail, &rec.PostResignationInsurance,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if plain, decErr := s.Crypto.Decrypt(myNumberEnc); decErr == nil {
		rec.MyNumber = string(plain)
	}

	deps, err := s.ListDependents(ctx, employeeNumber)
	if err != nil {
		return nil, err
	}
	rec.Dependents = deps
	return &rec, nil
}

// List returns the roster ordered by employee number. My-number stays
// encrypted at rest and is not decrypted for listings; dependents are
// loaded only on single-record reads.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM employees
    ORDER BY employee_number
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var myNumberEnc []byte
		if err := rows.Scan(
			&rec.EmployeeNumber, &rec.LastName, &rec.FirstName, &rec.LastNameKana, &rec.FirstNameKana,
			&rec.BirthDate, &rec.Email, &rec.Phone,
			&myNumberEnc, &rec.BasicPensionNumber,
			&rec.PostalCode, &rec.Address, &rec.AddressKana,
			&rec.ResidentPostalCode, &rec.ResidentAddress,
			&rec.HealthInsuranceType, &rec.NursingInsuranceType,
			&rec.EmergencyContactName, &rec.EmergencyContactPhone,
			&rec.BankName, &rec.BankBranch, &rec.BankAccountNumber,
			&rec.HiredAt, &rec.ResignationDate, &rec.LastWorkDate, &rec.ResignationReason,
			&rec.PostResignationAddress, &rec.PostResignationPhone,
			&rec.PostResignationEmail, &rec.PostResignationInsurance,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Save(ctx context.Context, rec *Record) error {
	myNumberEnc, err := s.Crypto.Encrypt([]byte(rec.MyNumber))
	if err != nil {
		return err
	}

	_, err = s.DB.Exec(ctx, `
    INSERT INTO employees (
      employee_number, last_name, first_name, last_name_kana, first_name_kana,
      birth_date, email, phone, my_number_enc, basic_pension_number,
      postal_code, address, address_kana, resident_postal_code, resident_address,
      health_insurance_type, nursing_insurance_type,
      emergency_contact_name, emergency_contact_phone,
      bank_name, bank_branch, bank_account_number, hired_at
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
    ON CONFLICT (employee_number) DO UPDATE SET
      last_name = EXCLUDED.last_name,
      first_name = EXCLUDED.first_name,
      last_name_kana = EXCLUDED.last_name_kana,
      first_name_kana = EXCLUDED.first_name_kana,
      birth_date = EXCLUDED.birth_date,
      email = EXCLUDED.email,
      phone = EXCLUDED.phone,
      my_number_enc = EXCLUDED.my_number_enc,
      basic_pension_number = EXCLUDED.basic_pension_number,
      postal_code = EXCLUDED.postal_code,
      address = EXCLUDED.address,
      address_kana = EXCLUDED.address_kana,
      resident_postal_code = EXCLUDED.resident_postal_code,
      resident_address = EXCLUDED.resident_address,
      health_insurance_type = EXCLUDED.health_insurance_type,
      nursing_insurance_type = EXCLUDED.nursing_insurance_type,
      emergency_contact_name = EXCLUDED.emergency_contact_name,
      emergency_contact_phone = EXCLUDED.emergency_contact_phone,
      bank_name = EXCLUDED.bank_name,
      bank_branch = EXCLUDED.bank_branch,
      bank_account_number = EXCLUDED.bank_account_number,
      hired_at = EXCLUDED.hired_at,
      updated_at = now()
  `,
		rec.EmployeeNumber, rec.LastName, rec.FirstName, rec.LastNameKana, rec.FirstNameKana,
		rec.BirthDate, rec.Email, rec.Phone, myNumberEnc, rec.BasicPensionNumber,
		rec.PostalCode, rec.Address, rec.AddressKana, rec.ResidentPostalCode, rec.ResidentAddress,
		rec.HealthInsuranceType, rec.NursingInsuranceType,
		rec.EmergencyContactName, rec.EmergencyContactPhone,
		rec.BankName, rec.BankBranch, rec.BankAccountNumber, rec.HiredAt,
	)
	return err
}

func (s *Store) UpdateAddress(ctx context.Context, employeeNumber string, update AddressUpdate) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET postal_code = $1, address = $2, address_kana = $3,
        resident_postal_code = $4, resident_address = $5, updated_at = now()
    WHERE employee_number = $6
  `, update.PostalCode, update.Address, update.AddressKana,
		update.ResidentPostalCode, update.ResidentAddress, employeeNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateName(ctx context.Context, employeeNumber string, update NameUpdate) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET last_name = $1, first_name = $2, last_name_kana = $3, first_name_kana = $4, updated_at = now()
    WHERE employee_number = $5
  `, update.LastName, update.FirstName, update.LastNameKana, update.FirstNameKana, employeeNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateMyNumber(ctx context.Context, employeeNumber, myNumber string) error {
	enc, err := s.Crypto.Encrypt([]byte(myNumber))
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET my_number_enc = $1, updated_at = now()
    WHERE employee_number = $2
  `, enc, employeeNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) StampResignation(ctx context.Context, employeeNumber string, stamp ResignationStamp) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET resignation_date = $1, last_work_date = $2, resignation_reason = $3,
        post_resignation_address = $4, post_resignation_phone = $5,
        post_resignation_email = $6, post_resignation_insurance = $7,
        updated_at = now()
    WHERE employee_number = $8
  `, stamp.ResignationDate, stamp.LastWorkDate, stamp.Reason,
		stamp.PostResignationAddress, stamp.PostResignationPhone,
		stamp.PostResignationEmail, stamp.PostResignationInsurance, employeeNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListDependents(ctx context.Context, employeeNumber string) ([]Dependent, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, relationship,
           COALESCE(birth_date, ''), COALESCE(income, ''), COALESCE(living_together, ''),
           COALESCE(postal_code, ''), COALESCE(address, ''), COALESCE(monthly_support, ''),
           COALESCE(my_number, ''), documents, created_at
    FROM dependents
    WHERE employee_number = $1
    ORDER BY created_at
  `, employeeNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dependent
	for rows.Next() {
		var dep Dependent
		if err := rows.Scan(
			&dep.ID, &dep.Name, &dep.Relationship,
			&dep.BirthDate, &dep.Income, &dep.LivingTogether,
			&dep.PostalCode, &dep.Address, &dep.MonthlySupport,
			&dep.MyNumber, &dep.Documents, &dep.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, nil
}

func (s *Store) AddDependent(ctx context.Context, employeeNumber string, dep Dependent) (string, error) {
	id := dep.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO dependents (
      id, employee_number, name, relationship, birth_date, income,
      living_together, postal_code, address, monthly_support, my_number, documents
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, id, employeeNumber, dep.Name, dep.Relationship, dep.BirthDate, dep.Income,
		dep.LivingTogether, dep.PostalCode, dep.Address, dep.MonthlySupport,
		dep.MyNumber, dep.Documents)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) RemoveDependentByID(ctx context.Context, employeeNumber, dependentID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM dependents WHERE employee_number = $1 AND id = $2
  `, employeeNumber, dependentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDependentNotFound
	}
	return nil
}

// RemoveDependentByMatch is the migration shim for removal applications that
// carry no dependent id. Two dependents sharing name and relationship cannot
// be told apart, so the match refuses to pick one.
func (s *Store) RemoveDependentByMatch(ctx context.Context, employeeNumber, name, relationship string) error {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM dependents
    WHERE employee_number = $1 AND name = $2 AND relationship = $3
  `, employeeNumber, name, relationship).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return ErrDependentNotFound
	}
	if count > 1 {
		return ErrAmbiguousMatch
	}

	_, err := s.DB.Exec(ctx, `
    DELETE FROM dependents
    WHERE employee_number = $1 AND name = $2 AND relationship = $3
  `, employeeNumber, name, relationship)
	return err
}
