package payroll

import "errors"

var (
	ErrSalaryNotFound        = errors.New("salary info not found for employee")
	ErrSalaryStructureExists = errors.New("salary info already exists for this employee")
	ErrNoChanges             = errors.New("no fields to update or no changes made")
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
)
