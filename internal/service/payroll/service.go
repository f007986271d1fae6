package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/notifier"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchLimit caps concurrent payslip generation in a monthly run.
const DefaultBatchLimit = 4

// MonthlyAttendance is the slice of the attendance store payroll reads from.
type MonthlyAttendance interface {
	ListByUserAndMonth(ctx context.Context, userID string, month string) ([]attendance.Attendance, error)
}

type PayrollServiceImpl struct {
	salaryRepo  payroll.SalaryRepository
	payrollRepo payroll.PayrollRepository
	attendance  MonthlyAttendance
	users       user.Resolver
	tx          database.Transactor
	notifier    notifier.Notifier
	templates   *email.Templates
	clock       clock.Clock
	batchLimit  int
}

func NewPayrollService(
	salaryRepo payroll.SalaryRepository,
	payrollRepo payroll.PayrollRepository,
	attendanceReader MonthlyAttendance,
	users user.Resolver,
	tx database.Transactor,
	n notifier.Notifier,
	templates *email.Templates,
	clk clock.Clock,
	batchLimit int,
) payroll.PayrollService {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &PayrollServiceImpl{
		salaryRepo:  salaryRepo,
		payrollRepo: payrollRepo,
		attendance:  attendanceReader,
		users:       users,
		tx:          tx,
		notifier:    n,
		templates:   templates,
		clock:       clk,
		batchLimit:  batchLimit,
	}
}

// ========== PAYSLIPS ==========

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	salary, err := s.salaryRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	record, err := s.generate(ctx, salary, req.Month)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(record), nil
}

func (s *PayrollServiceImpl) generate(ctx context.Context, salary payroll.SalaryStructure, month string) (payroll.PayrollRecord, error) {
	if validator.IsEmpty(salary.EmployeeName) {
		return payroll.PayrollRecord{}, fmt.Errorf("%w: employee name is missing", payroll.ErrSalaryNotFound)
	}

	records, err := s.attendance.ListByUserAndMonth(ctx, salary.EmployeeID, month)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	generatedOn := s.clock.Now().UTC().Format(clock.DateLayout)
	computed := ComputePayroll(salary, records, month, generatedOn)

	saved, err := s.payrollRepo.Replace(ctx, computed)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to save payroll: %w", err)
	}

	slog.Info("Payslip generated",
		"employee_id", saved.EmployeeID,
		"month", saved.Month,
		"present_days", saved.Attendance.PresentDays,
		"net_salary", saved.NetSalary.String(),
	)
	return saved, nil
}

// GenerateMonthlyPayroll implements payroll.PayrollService. One employee failing
// does not stop the rest; failures are reported alongside the payslips.
func (s *PayrollServiceImpl) GenerateMonthlyPayroll(ctx context.Context, req payroll.GenerateMonthlyPayrollRequest) (payroll.MonthlyPayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.MonthlyPayrollResponse{}, err
	}

	salaries, err := s.salaryRepo.List(ctx)
	if err != nil {
		return payroll.MonthlyPayrollResponse{}, fmt.Errorf("failed to list salary structures: %w", err)
	}

	results := make([]*payroll.PayrollRecord, len(salaries))
	failures := make([]error, len(salaries))

	var g errgroup.Group
	g.SetLimit(s.batchLimit)
	for i, salary := range salaries {
		i, salary := i, salary
		g.Go(func() error {
			record, err := s.generate(ctx, salary, req.Month)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = &record
			return nil
		})
	}
	_ = g.Wait()

	resp := payroll.MonthlyPayrollResponse{
		Month:     req.Month,
		Generated: make([]payroll.PayslipResponse, 0, len(salaries)),
		Failed:    []payroll.PayrollFailure{},
	}
	for i, salary := range salaries {
		if failures[i] != nil {
			slog.Warn("Payslip generation failed", "employee_id", salary.EmployeeID, "month", req.Month, "error", failures[i])
			resp.Failed = append(resp.Failed, payroll.PayrollFailure{EmployeeID: salary.EmployeeID, Error: failures[i].Error()})
			continue
		}
		resp.Generated = append(resp.Generated, payroll.NewPayslipResponse(*results[i]))
	}

	slog.Info("Monthly payroll generated", "month", req.Month, "generated", len(resp.Generated), "failed", len(resp.Failed))
	return resp, nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, employeeID, month string) (payroll.PayslipResponse, error) {
	req := payroll.GeneratePayslipRequest{EmployeeID: employeeID, Month: month}
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	record, err := s.payrollRepo.GetByEmployeeAndMonth(ctx, employeeID, month)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(record), nil
}

// ========== SALARY STRUCTURES ==========

// GetSalaryStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSalaryStructure(ctx context.Context, employeeID string) (payroll.SalaryStructureResponse, error) {
	if validator.IsEmpty(employeeID) {
		return payroll.SalaryStructureResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}

	salary, err := s.salaryRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return payroll.SalaryStructureResponse{}, err
	}
	return payroll.NewSalaryStructureResponse(salary), nil
}

// AddSalaryStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) AddSalaryStructure(ctx context.Context, req payroll.AddSalaryStructureRequest) (payroll.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryStructureResponse{}, err
	}

	joiningDate := req.JoiningDate
	salary := payroll.SalaryStructure{
		EmployeeID:        req.EmployeeID,
		EmployeeName:      req.EmployeeName,
		BaseSalary:        req.BaseSalary,
		Basic:             req.Basic,
		HRA:               req.HRA,
		DA:                req.DA,
		Bonus:             req.Bonus,
		PB:                req.PB,
		LTA:               req.LTA,
		Fixed:             req.Fixed,
		TaxPercent:        req.TaxPercent,
		PFPercent:         req.PFPercent,
		PF:                req.PF,
		ProfessionalTax:   req.ProfessionalTax,
		PaidLeavesAllowed: req.PaidLeavesAllowed,
		JoiningDate:       &joiningDate,
		Status:            req.Status,
		LastUpdate:        clock.IST(s.clock.Now()),
		UpdatedBy:         req.UpdatedBy,
	}

	created, err := s.salaryRepo.Create(ctx, salary)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryStructureExists) {
			return payroll.SalaryStructureResponse{}, err
		}
		return payroll.SalaryStructureResponse{}, fmt.Errorf("failed to create salary structure: %w", err)
	}

	slog.Info("Salary structure created", "employee_id", created.EmployeeID, "updated_by", created.UpdatedBy)
	return payroll.NewSalaryStructureResponse(created), nil
}

// UpdateSalaryStructure implements payroll.PayrollService.
// Only supplied fields are merged. The row stays locked between read and write.
func (s *PayrollServiceImpl) UpdateSalaryStructure(ctx context.Context, req payroll.UpdateSalaryStructureRequest) (payroll.UpdateSalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.UpdateSalaryStructureResponse{}, err
	}

	var (
		updated payroll.SalaryStructure
		changes []payroll.FieldChange
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.salaryRepo.GetByEmployeeIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		updated, changes = mergeSalary(current, req)
		if len(changes) == 0 {
			return payroll.ErrNoChanges
		}
		updated.LastUpdate = clock.IST(s.clock.Now())

		return s.salaryRepo.Update(ctx, updated)
	})
	if err != nil {
		return payroll.UpdateSalaryStructureResponse{}, err
	}

	slog.Info("Salary structure updated", "employee_id", updated.EmployeeID, "changes", len(changes))
	s.notifySalaryUpdate(ctx, updated, changes)

	return payroll.UpdateSalaryStructureResponse{
		Salary:  payroll.NewSalaryStructureResponse(updated),
		Changes: changes,
	}, nil
}

// notifySalaryUpdate queues the change summary email. Nothing here fails the update.
func (s *PayrollServiceImpl) notifySalaryUpdate(ctx context.Context, salary payroll.SalaryStructure, changes []payroll.FieldChange) {
	u, err := s.users.Resolve(ctx, salary.EmployeeID)
	if err != nil {
		slog.Warn("Salary update email skipped, user lookup failed", "employee_id", salary.EmployeeID, "error", err)
		return
	}
	if u.Email == nil || validator.IsEmpty(*u.Email) {
		slog.Warn("Salary update email skipped, no email on file", "employee_id", salary.EmployeeID)
		return
	}

	data := email.SalaryUpdateData{
		EmployeeName: salary.EmployeeName,
		UpdatedOn:    salary.LastUpdate.Format(clock.DateLayout),
		Changes:      make([]email.SalaryChange, 0, len(changes)),
	}
	for _, c := range changes {
		data.Changes = append(data.Changes, email.SalaryChange{Field: c.Field, Old: c.Old, New: c.New})
	}

	msg, err := s.templates.SalaryUpdate(*u.Email, data)
	if err != nil {
		slog.Error("Failed to render salary update email", "employee_id", salary.EmployeeID, "error", err)
		return
	}
	s.notifier.Notify(msg)
}
