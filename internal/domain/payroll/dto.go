package payroll

import (
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYSLIP DTOs ==========

type GeneratePayslipRequest struct {
	EmployeeID string `json:"user_id"`
	Month      string `json:"month"`
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	errs = appendMonthError(errs, r.Month)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateMonthlyPayrollRequest struct {
	Month string `json:"month"`
}

func (r *GenerateMonthlyPayrollRequest) Validate() error {
	if errs := appendMonthError(nil, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

func appendMonthError(errs validator.ValidationErrors, month string) validator.ValidationErrors {
	if validator.IsEmpty(month) {
		return append(errs, validator.ValidationError{Field: "month", Message: "month is required"})
	}
	if _, ok := validator.IsValidMonth(month); !ok {
		return append(errs, validator.ValidationError{Field: "month", Message: "month must be in YYYY-MM format"})
	}
	return errs
}

type AttendanceSummaryResponse struct {
	TotalWorkingDays   int             `json:"total_working_days"`
	PresentDays        int             `json:"present_days"`
	AbsentDays         int             `json:"absent_days"`
	PaidLeaveAllowance decimal.Decimal `json:"paid_leave_allowance"`
	UnpaidLeaveDays    decimal.Decimal `json:"unpaid_leave_days"`
}

type DeductionsResponse struct {
	PFAmount       decimal.Decimal `json:"pf_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LeaveDeduction decimal.Decimal `json:"leave_deduction"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
}

type SalaryBreakdownResponse struct {
	GrossSalary decimal.Decimal `json:"gross_salary"`
	NetSalary   decimal.Decimal `json:"net_salary"`
}

// PayslipResponse keeps the flat legacy fields (basic_salary, pf, professionaltax,
// salary_breakdown) next to the structured ones for existing clients.
type PayslipResponse struct {
	ID                string                    `json:"id"`
	EmployeeID        string                    `json:"employee_id"`
	EmployeeName      string                    `json:"employee_name"`
	Month             string                    `json:"month"`
	Basic             decimal.Decimal           `json:"basic"`
	HRA               decimal.Decimal           `json:"hra"`
	DA                decimal.Decimal           `json:"da"`
	PB                decimal.Decimal           `json:"pb"`
	LTA               decimal.Decimal           `json:"lta"`
	Fixed             decimal.Decimal           `json:"fixed"`
	GrossSalary       decimal.Decimal           `json:"gross_salary"`
	PF                decimal.Decimal           `json:"pf"`
	ProfessionalTax   decimal.Decimal           `json:"professionaltax"`
	TotalDeductions   decimal.Decimal           `json:"total_deductions"`
	NetSalary         decimal.Decimal           `json:"net_salary"`
	BasicSalary       decimal.Decimal           `json:"basic_salary"`
	SalaryBreakdown   SalaryBreakdownResponse   `json:"salary_breakdown"`
	AttendanceSummary AttendanceSummaryResponse `json:"attendance_summary"`
	Deductions        DeductionsResponse        `json:"deductions"`
	Status            string                    `json:"status"`
	GeneratedOn       string                    `json:"generated_on"`
}

func NewPayslipResponse(r PayrollRecord) PayslipResponse {
	return PayslipResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Month:           r.Month,
		Basic:           r.Earnings.Basic,
		HRA:             r.Earnings.HRA,
		DA:              r.Earnings.DA,
		PB:              r.Earnings.PB,
		LTA:             r.Earnings.LTA,
		Fixed:           r.Earnings.Fixed,
		GrossSalary:     r.GrossSalary,
		PF:              r.Deductions.PF,
		ProfessionalTax: r.Deductions.ProfessionalTax,
		TotalDeductions: r.Deductions.Total,
		NetSalary:       r.NetSalary,
		BasicSalary:     r.Earnings.Basic,
		SalaryBreakdown: SalaryBreakdownResponse{
			GrossSalary: r.GrossSalary,
			NetSalary:   r.NetSalary,
		},
		AttendanceSummary: AttendanceSummaryResponse{
			TotalWorkingDays:   r.Attendance.TotalWorkingDays,
			PresentDays:        r.Attendance.PresentDays,
			AbsentDays:         r.Attendance.AbsentDays,
			PaidLeaveAllowance: r.Attendance.PaidLeaveAllowance,
			UnpaidLeaveDays:    r.Attendance.UnpaidLeaveDays,
		},
		Deductions: DeductionsResponse{
			PFAmount:       r.Deductions.PF,
			TaxAmount:      r.Deductions.ProfessionalTax,
			LeaveDeduction: r.Deductions.LeaveDeduction,
			TotalDeduction: r.Deductions.Total,
		},
		Status:      r.Status,
		GeneratedOn: r.GeneratedOn,
	}
}

type PayrollFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type MonthlyPayrollResponse struct {
	Month     string            `json:"month"`
	Generated []PayslipResponse `json:"generated"`
	Failed    []PayrollFailure  `json:"failed"`
}

// ========== SALARY STRUCTURE DTOs ==========

type SalaryStructureResponse struct {
	EmployeeID        string           `json:"employee_id"`
	EmployeeName      string           `json:"employee_name"`
	BaseSalary        *decimal.Decimal `json:"base_salary,omitempty"`
	Basic             *decimal.Decimal `json:"basic,omitempty"`
	HRA               *decimal.Decimal `json:"hra,omitempty"`
	DA                *decimal.Decimal `json:"da,omitempty"`
	Bonus             *decimal.Decimal `json:"bonus,omitempty"`
	PB                *decimal.Decimal `json:"pb,omitempty"`
	LTA               *decimal.Decimal `json:"lta,omitempty"`
	Fixed             *decimal.Decimal `json:"fixed,omitempty"`
	TaxPercent        *decimal.Decimal `json:"tax_percent,omitempty"`
	PFPercent         *decimal.Decimal `json:"pf_percent,omitempty"`
	PF                *decimal.Decimal `json:"pf,omitempty"`
	ProfessionalTax   *decimal.Decimal `json:"professionaltax,omitempty"`
	PaidLeavesAllowed *decimal.Decimal `json:"paid_leaves_allowed,omitempty"`
	JoiningDate       *string          `json:"joining_date,omitempty"`
	Status            *string          `json:"status,omitempty"`
	LastUpdate        string           `json:"last_update"`
	UpdatedBy         string           `json:"updated_by"`
}

func NewSalaryStructureResponse(s SalaryStructure) SalaryStructureResponse {
	return SalaryStructureResponse{
		EmployeeID:        s.EmployeeID,
		EmployeeName:      s.EmployeeName,
		BaseSalary:        s.BaseSalary,
		Basic:             s.Basic,
		HRA:               s.HRA,
		DA:                s.DA,
		Bonus:             s.Bonus,
		PB:                s.PB,
		LTA:               s.LTA,
		Fixed:             s.Fixed,
		TaxPercent:        s.TaxPercent,
		PFPercent:         s.PFPercent,
		PF:                s.PF,
		ProfessionalTax:   s.ProfessionalTax,
		PaidLeavesAllowed: s.PaidLeavesAllowed,
		JoiningDate:       s.JoiningDate,
		Status:            s.Status,
		LastUpdate:        s.LastUpdate.Format(clock.DateTimeLayout),
		UpdatedBy:         s.UpdatedBy,
	}
}

// SalaryComponents is the set of numeric fields shared by add and update requests
type SalaryComponents struct {
	BaseSalary        *decimal.Decimal `json:"base_salary,omitempty"`
	Basic             *decimal.Decimal `json:"basic,omitempty"`
	HRA               *decimal.Decimal `json:"hra,omitempty"`
	DA                *decimal.Decimal `json:"da,omitempty"`
	Bonus             *decimal.Decimal `json:"bonus,omitempty"`
	PB                *decimal.Decimal `json:"pb,omitempty"`
	LTA               *decimal.Decimal `json:"lta,omitempty"`
	Fixed             *decimal.Decimal `json:"fixed,omitempty"`
	TaxPercent        *decimal.Decimal `json:"tax_percent,omitempty"`
	PFPercent         *decimal.Decimal `json:"pf_percent,omitempty"`
	PF                *decimal.Decimal `json:"pf,omitempty"`
	ProfessionalTax   *decimal.Decimal `json:"professionaltax,omitempty"`
	PaidLeavesAllowed *decimal.Decimal `json:"paid_leaves_allowed,omitempty"`
}

func (c SalaryComponents) fields() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"base_salary":         c.BaseSalary,
		"basic":               c.Basic,
		"hra":                 c.HRA,
		"da":                  c.DA,
		"bonus":               c.Bonus,
		"pb":                  c.PB,
		"lta":                 c.LTA,
		"fixed":               c.Fixed,
		"tax_percent":         c.TaxPercent,
		"pf_percent":          c.PFPercent,
		"pf":                  c.PF,
		"professionaltax":     c.ProfessionalTax,
		"paid_leaves_allowed": c.PaidLeavesAllowed,
	}
}

func (c SalaryComponents) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	for _, name := range salaryComponentOrder {
		if v := c.fields()[name]; v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: name, Message: "must be non-negative"})
		}
	}
	return errs
}

var salaryComponentOrder = []string{
	"base_salary", "basic", "hra", "da", "bonus", "pb", "lta", "fixed",
	"tax_percent", "pf_percent", "pf", "professionaltax", "paid_leaves_allowed",
}

type AddSalaryStructureRequest struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	SalaryComponents
	JoiningDate string  `json:"joining_date"`
	Status      *string `json:"status,omitempty"`
	UpdatedBy   string  `json:"updated_by"`
}

func (r *AddSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{Field: "employee_name", Message: "employee_name is required"})
	}
	if !isPositive(r.BaseSalary) && !isPositive(r.Basic) {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary or basic must be greater than 0"})
	}
	if validator.IsEmpty(r.JoiningDate) {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date is required"})
	} else if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.UpdatedBy) {
		errs = append(errs, validator.ValidationError{Field: "updated_by", Message: "updated_by is required"})
	}
	errs = r.SalaryComponents.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSalaryStructureRequest struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	SalaryComponents
	JoiningDate *string `json:"joining_date,omitempty"`
	Status      *string `json:"status,omitempty"`
	UpdatedBy   *string `json:"updated_by,omitempty"`
}

func (r *UpdateSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.JoiningDate != nil && !validator.IsEmpty(*r.JoiningDate) {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
		}
	}
	errs = r.SalaryComponents.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FieldChange - One field that an update changed. Absent values read "N/A".
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

type UpdateSalaryStructureResponse struct {
	Salary  SalaryStructureResponse `json:"salary"`
	Changes []FieldChange           `json:"changes"`
}

func isPositive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

