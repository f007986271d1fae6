package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Payslips
	GeneratePayslip(w http.ResponseWriter, r *http.Request)
	GenerateMonthlyPayroll(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)

	// Salary structures
	GetSalary(w http.ResponseWriter, r *http.Request)
	AddSalary(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate payslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	slip, err := h.payrollService.GeneratePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated successfully", slip)
}

func (h *payrollHandlerImpl) GenerateMonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateMonthlyPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate monthly payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.GenerateMonthlyPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly payroll generated", result)
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.payrollService.GetPayslip(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

// ========== SALARY STRUCTURES ==========

func (h *payrollHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	salary, err := h.payrollService.GetSalaryStructure(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, salary)
}

func (h *payrollHandlerImpl) AddSalary(w http.ResponseWriter, r *http.Request) {
	var req payroll.AddSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add salary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	salary, err := h.payrollService.AddSalaryStructure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary info added successfully", salary)
}

func (h *payrollHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update salary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpdateSalaryStructure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary info updated successfully", result)
}
