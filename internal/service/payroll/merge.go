package payroll

import (
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

// mergeSalary applies the supplied fields of req onto current and lists what changed.
// Employee name, status and updated_by are only taken when non-empty. base_salary
// is only taken when non-zero. Other components are taken whenever supplied.
func mergeSalary(current payroll.SalaryStructure, req payroll.UpdateSalaryStructureRequest) (payroll.SalaryStructure, []payroll.FieldChange) {
	m := merger{next: current}

	if req.EmployeeName != nil && *req.EmployeeName != "" {
		m.text("employee_name", &m.next.EmployeeName, *req.EmployeeName)
	}
	if req.BaseSalary != nil && !req.BaseSalary.IsZero() {
		m.amount("base_salary", &m.next.BaseSalary, req.BaseSalary)
	}
	m.amount("basic", &m.next.Basic, req.Basic)
	m.amount("hra", &m.next.HRA, req.HRA)
	m.amount("da", &m.next.DA, req.DA)
	m.amount("bonus", &m.next.Bonus, req.Bonus)
	m.amount("pb", &m.next.PB, req.PB)
	m.amount("lta", &m.next.LTA, req.LTA)
	m.amount("fixed", &m.next.Fixed, req.Fixed)
	m.amount("tax_percent", &m.next.TaxPercent, req.TaxPercent)
	m.amount("pf_percent", &m.next.PFPercent, req.PFPercent)
	m.amount("pf", &m.next.PF, req.PF)
	m.amount("professionaltax", &m.next.ProfessionalTax, req.ProfessionalTax)
	m.amount("paid_leaves_allowed", &m.next.PaidLeavesAllowed, req.PaidLeavesAllowed)
	if req.JoiningDate != nil && *req.JoiningDate != "" {
		m.optionalText("joining_date", &m.next.JoiningDate, *req.JoiningDate)
	}
	if req.Status != nil && *req.Status != "" {
		m.optionalText("status", &m.next.Status, *req.Status)
	}
	if req.UpdatedBy != nil && *req.UpdatedBy != "" {
		m.text("updated_by", &m.next.UpdatedBy, *req.UpdatedBy)
	}

	return m.next, m.changes
}

type merger struct {
	next    payroll.SalaryStructure
	changes []payroll.FieldChange
}

func (m *merger) record(field, oldValue, newValue string) {
	m.changes = append(m.changes, payroll.FieldChange{Field: field, Old: oldValue, New: newValue})
}

func (m *merger) amount(field string, dst **decimal.Decimal, src *decimal.Decimal) {
	if src == nil {
		return
	}
	if *dst != nil && (*dst).Equal(*src) {
		return
	}
	m.record(field, formatAmount(*dst), src.String())
	v := *src
	*dst = &v
}

func (m *merger) text(field string, dst *string, src string) {
	if *dst == src {
		return
	}
	m.record(field, orNotAvailable(*dst), src)
	*dst = src
}

func (m *merger) optionalText(field string, dst **string, src string) {
	if *dst != nil && **dst == src {
		return
	}
	old := notAvailable
	if *dst != nil {
		old = orNotAvailable(**dst)
	}
	m.record(field, old, src)
	v := src
	*dst = &v
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return d.String()
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
