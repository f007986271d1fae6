package payroll

import "context"

type PayrollService interface {
	// Payslips
	GeneratePayslip(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	GenerateMonthlyPayroll(ctx context.Context, req GenerateMonthlyPayrollRequest) (MonthlyPayrollResponse, error)
	GetPayslip(ctx context.Context, employeeID, month string) (PayslipResponse, error)

	// Salary structures
	GetSalaryStructure(ctx context.Context, employeeID string) (SalaryStructureResponse, error)
	AddSalaryStructure(ctx context.Context, req AddSalaryStructureRequest) (SalaryStructureResponse, error)
	UpdateSalaryStructure(ctx context.Context, req UpdateSalaryStructureRequest) (UpdateSalaryStructureResponse, error)
}
