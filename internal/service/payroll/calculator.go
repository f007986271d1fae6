package payroll

import (
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	half        = decimal.RequireFromString("0.5")
	workingDays = decimal.NewFromInt(payroll.WorkingDaysPerMonth)
)

// roundHalfUp rounds to the nearest integer with halves going up, so -2.5 becomes -2.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// basicPay is the structured basic, falling back to the legacy flat salary when basic is absent or zero.
func basicPay(s payroll.SalaryStructure) decimal.Decimal {
	if s.Basic != nil && !s.Basic.IsZero() {
		return *s.Basic
	}
	return valueOrZero(s.BaseSalary)
}

func paidLeaves(s payroll.SalaryStructure) decimal.Decimal {
	if s.PaidLeavesAllowed != nil && !s.PaidLeavesAllowed.IsNegative() {
		return *s.PaidLeavesAllowed
	}
	return payroll.DefaultPaidLeaves
}

func professionalTax(s payroll.SalaryStructure) decimal.Decimal {
	if s.ProfessionalTax != nil && s.ProfessionalTax.IsPositive() {
		return *s.ProfessionalTax
	}
	return payroll.DefaultProfessionalTax
}

// ComputePayroll derives one month's payslip from a salary structure and that
// month's attendance. It is pure: the same inputs always give the same record.
func ComputePayroll(salary payroll.SalaryStructure, records []attendance.Attendance, month, generatedOn string) payroll.PayrollRecord {
	present := 0
	for _, r := range records {
		if r.Status == attendance.StatusPresent {
			present++
		}
	}
	absent := max(0, payroll.WorkingDaysPerMonth-present)

	paid := paidLeaves(salary)
	unpaid := decimal.Max(decimal.Zero, decimal.NewFromInt(int64(absent)).Sub(paid))

	earnings := payroll.Earnings{
		Basic: basicPay(salary),
		HRA:   valueOrZero(salary.HRA),
		DA:    valueOrZero(salary.DA),
		PB:    valueOrZero(salary.PB),
		LTA:   valueOrZero(salary.LTA),
		Fixed: valueOrZero(salary.Fixed),
	}
	gross := earnings.Total()

	pf := roundHalfUp(earnings.Basic.Mul(payroll.PFRate))
	tax := professionalTax(salary)
	leaveDeduction := roundHalfUp(unpaid.Mul(gross).Div(workingDays))
	totalDeductions := decimal.Sum(pf, tax, leaveDeduction)

	return payroll.PayrollRecord{
		EmployeeID:   salary.EmployeeID,
		EmployeeName: salary.EmployeeName,
		Month:        month,
		Earnings:     earnings,
		GrossSalary:  roundHalfUp(gross),
		Deductions: payroll.Deductions{
			PF:              pf,
			ProfessionalTax: tax,
			LeaveDeduction:  leaveDeduction,
			Total:           totalDeductions,
		},
		NetSalary: roundHalfUp(gross.Sub(totalDeductions)),
		Attendance: payroll.AttendanceSummary{
			TotalWorkingDays:   payroll.WorkingDaysPerMonth,
			PresentDays:        present,
			AbsentDays:         absent,
			PaidLeaveAllowance: paid,
			UnpaidLeaveDays:    unpaid,
		},
		Status:      payroll.StatusProcessed,
		GeneratedOn: generatedOn,
	}
}
