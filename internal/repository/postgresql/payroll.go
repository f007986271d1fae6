package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `id, employee_id, employee_name, month,
	basic, hra, da, pb, lta, fixed, gross_salary,
	pf_amount, professional_tax, leave_deduction, total_deductions, net_salary,
	total_working_days, present_days, absent_days, paid_leave_allowance, unpaid_leave_days,
	status, generated_on`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// Replace implements payroll.PayrollRepository. One statement, so concurrent
// regenerations of the same key always leave exactly one row. The row is
// replaced wholesale, id included.
func (r *payrollRepository) Replace(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = utils.NewObjectID()
	}

	query := `
		INSERT INTO payrolls (` + payrollColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT ON CONSTRAINT payrolls_employee_month_key DO UPDATE SET
			id = EXCLUDED.id,
			employee_name = EXCLUDED.employee_name,
			basic = EXCLUDED.basic,
			hra = EXCLUDED.hra,
			da = EXCLUDED.da,
			pb = EXCLUDED.pb,
			lta = EXCLUDED.lta,
			fixed = EXCLUDED.fixed,
			gross_salary = EXCLUDED.gross_salary,
			pf_amount = EXCLUDED.pf_amount,
			professional_tax = EXCLUDED.professional_tax,
			leave_deduction = EXCLUDED.leave_deduction,
			total_deductions = EXCLUDED.total_deductions,
			net_salary = EXCLUDED.net_salary,
			total_working_days = EXCLUDED.total_working_days,
			present_days = EXCLUDED.present_days,
			absent_days = EXCLUDED.absent_days,
			paid_leave_allowance = EXCLUDED.paid_leave_allowance,
			unpaid_leave_days = EXCLUDED.unpaid_leave_days,
			status = EXCLUDED.status,
			generated_on = EXCLUDED.generated_on
		RETURNING ` + payrollColumns

	e, d, a := record.Earnings, record.Deductions, record.Attendance
	saved, err := scanPayroll(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.EmployeeName, record.Month,
		e.Basic, e.HRA, e.DA, e.PB, e.LTA, e.Fixed, record.GrossSalary,
		d.PF, d.ProfessionalTax, d.LeaveDeduction, d.Total, record.NetSalary,
		a.TotalWorkingDays, a.PresentDays, a.AbsentDays, a.PaidLeaveAllowance, a.UnpaidLeaveDays,
		record.Status, record.GeneratedOn,
	))
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to save payroll record: %w", err)
	}

	return saved, nil
}

// GetByEmployeeAndMonth implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE employee_id = $1 AND month = $2`

	rec, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	e, d, a := &rec.Earnings, &rec.Deductions, &rec.Attendance
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Month,
		&e.Basic, &e.HRA, &e.DA, &e.PB, &e.LTA, &e.Fixed, &rec.GrossSalary,
		&d.PF, &d.ProfessionalTax, &d.LeaveDeduction, &d.Total, &rec.NetSalary,
		&a.TotalWorkingDays, &a.PresentDays, &a.AbsentDays, &a.PaidLeaveAllowance, &a.UnpaidLeaveDays,
		&rec.Status, &rec.GeneratedOn,
	)
	return rec, err
}
