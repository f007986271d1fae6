package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const salaryColumns = `employee_id, employee_name, base_salary, basic, hra, da, bonus, pb, lta, fixed,
	tax_percent, pf_percent, pf, professional_tax, paid_leaves_allowed,
	to_char(joining_date, 'YYYY-MM-DD'), status, last_update, updated_by`

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

// GetByEmployeeID implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.SalaryStructure, error) {
	return r.get(ctx, `SELECT `+salaryColumns+` FROM salary_info WHERE employee_id = $1`, employeeID)
}

// GetByEmployeeIDForUpdate implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (payroll.SalaryStructure, error) {
	return r.get(ctx, `SELECT `+salaryColumns+` FROM salary_info WHERE employee_id = $1 FOR UPDATE`, employeeID)
}

func (r *salaryRepositoryImpl) get(ctx context.Context, query string, employeeID string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrSalaryNotFound
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary info: %w", err)
	}
	return s, nil
}

// Create implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_info (
			employee_id, employee_name, base_salary, basic, hra, da, bonus, pb, lta, fixed,
			tax_percent, pf_percent, pf, professional_tax, paid_leaves_allowed,
			joining_date, status, last_update, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16::date, $17, $18, $19)
		RETURNING ` + salaryColumns

	created, err := scanSalary(q.QueryRow(ctx, query, salaryArgs(s)...))
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.SalaryStructure{}, payroll.ErrSalaryStructureExists
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to create salary info: %w", err)
	}
	return created, nil
}

// Update implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) Update(ctx context.Context, s payroll.SalaryStructure) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE salary_info SET
			employee_name = $2, base_salary = $3, basic = $4, hra = $5, da = $6, bonus = $7,
			pb = $8, lta = $9, fixed = $10, tax_percent = $11, pf_percent = $12, pf = $13,
			professional_tax = $14, paid_leaves_allowed = $15, joining_date = $16::date,
			status = $17, last_update = $18, updated_by = $19
		WHERE employee_id = $1
	`, salaryArgs(s)...)
	if err != nil {
		return fmt.Errorf("failed to update salary info: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrSalaryNotFound
	}

	return nil
}

// List implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context) ([]payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+salaryColumns+` FROM salary_info ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary info: %w", err)
	}
	defer rows.Close()

	var out []payroll.SalaryStructure
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary info: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func salaryArgs(s payroll.SalaryStructure) []interface{} {
	return []interface{}{
		s.EmployeeID, s.EmployeeName, s.BaseSalary, s.Basic, s.HRA, s.DA, s.Bonus,
		s.PB, s.LTA, s.Fixed, s.TaxPercent, s.PFPercent, s.PF,
		s.ProfessionalTax, s.PaidLeavesAllowed, s.JoiningDate,
		s.Status, s.LastUpdate, s.UpdatedBy,
	}
}

func scanSalary(row pgx.Row) (payroll.SalaryStructure, error) {
	var s payroll.SalaryStructure
	err := row.Scan(
		&s.EmployeeID, &s.EmployeeName, &s.BaseSalary, &s.Basic, &s.HRA, &s.DA, &s.Bonus,
		&s.PB, &s.LTA, &s.Fixed, &s.TaxPercent, &s.PFPercent, &s.PF,
		&s.ProfessionalTax, &s.PaidLeavesAllowed, &s.JoiningDate,
		&s.Status, &s.LastUpdate, &s.UpdatedBy,
	)
	return s, err
}
