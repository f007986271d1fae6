package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts go over the wire as JSON numbers, the shape payslip clients read.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Computation constants
const (
	WorkingDaysPerMonth = 26
	StatusProcessed     = "Processed"
)

var (
	DefaultPaidLeaves      = decimal.NewFromInt(2)
	DefaultProfessionalTax = decimal.NewFromInt(200)
	PFRate                 = decimal.RequireFromString("0.12")
)

// SalaryStructure - Per-employee compensation. A nil component is absent.
// BaseSalary is the legacy flat salary used when Basic is absent or zero.
type SalaryStructure struct {
	EmployeeID        string
	EmployeeName      string
	BaseSalary        *decimal.Decimal
	Basic             *decimal.Decimal
	HRA               *decimal.Decimal
	DA                *decimal.Decimal
	Bonus             *decimal.Decimal
	PB                *decimal.Decimal
	LTA               *decimal.Decimal
	Fixed             *decimal.Decimal
	TaxPercent        *decimal.Decimal
	PFPercent         *decimal.Decimal
	PF                *decimal.Decimal
	ProfessionalTax   *decimal.Decimal
	PaidLeavesAllowed *decimal.Decimal
	JoiningDate       *string
	Status            *string
	LastUpdate        time.Time
	UpdatedBy         string
}

// Earnings - Components summed into gross pay
type Earnings struct {
	Basic decimal.Decimal
	HRA   decimal.Decimal
	DA    decimal.Decimal
	PB    decimal.Decimal
	LTA   decimal.Decimal
	Fixed decimal.Decimal
}

func (e Earnings) Total() decimal.Decimal {
	return decimal.Sum(e.Basic, e.HRA, e.DA, e.PB, e.LTA, e.Fixed)
}

type Deductions struct {
	PF              decimal.Decimal
	ProfessionalTax decimal.Decimal
	LeaveDeduction  decimal.Decimal
	Total           decimal.Decimal
}

// AttendanceSummary - Attendance snapshot the payslip was computed from
type AttendanceSummary struct {
	TotalWorkingDays   int
	PresentDays        int
	AbsentDays         int
	PaidLeaveAllowance decimal.Decimal
	UnpaidLeaveDays    decimal.Decimal
}

// PayrollRecord - Generated payslip for one employee and month
type PayrollRecord struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Month        string
	Earnings     Earnings
	GrossSalary  decimal.Decimal
	Deductions   Deductions
	NetSalary    decimal.Decimal
	Attendance   AttendanceSummary
	Status       string
	GeneratedOn  string
}
