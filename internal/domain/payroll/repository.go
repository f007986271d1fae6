package payroll

import "context"

type SalaryRepository interface {
	// GetByEmployeeID returns ErrSalaryNotFound when absent
	GetByEmployeeID(ctx context.Context, employeeID string) (SalaryStructure, error)
	// GetByEmployeeIDForUpdate is GetByEmployeeID holding a row lock until the transaction ends
	GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (SalaryStructure, error)
	// Create returns ErrSalaryStructureExists when the employee already has one
	Create(ctx context.Context, salary SalaryStructure) (SalaryStructure, error)
	// Update overwrites every column; returns ErrSalaryNotFound when absent
	Update(ctx context.Context, salary SalaryStructure) error
	List(ctx context.Context) ([]SalaryStructure, error)
}

type PayrollRepository interface {
	// Replace atomically swaps any record for (employee, month) with the given one
	Replace(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	// GetByEmployeeAndMonth returns ErrPayrollRecordNotFound when absent
	GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (PayrollRecord, error)
}
