package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/config"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubAttendanceService struct {
	mark func(req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error)
}

func (s *stubAttendanceService) GetTodayStatus(_ context.Context, identity string) (attendance.TodayStatusResponse, error) {
	if identity == "ghost" {
		return attendance.TodayStatusResponse{}, user.ErrUserNotFound
	}
	return attendance.TodayStatusResponse{Status: attendance.StatusAbsent}, nil
}

func (s *stubAttendanceService) MarkAttendance(_ context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	return s.mark(req)
}

func (s *stubAttendanceService) ListAttendance(_ context.Context, _ string) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{Attendance: []attendance.AttendanceResponse{}}, nil
}

func (s *stubAttendanceService) ListUserMonth(_ context.Context, _ string, month string) (attendance.ListAttendanceResponse, error) {
	if _, ok := validator.IsValidMonth(month); !ok {
		return attendance.ListAttendanceResponse{}, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return attendance.ListAttendanceResponse{Attendance: []attendance.AttendanceResponse{}}, nil
}

type stubUserService struct{}

func (stubUserService) Resolve(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (stubUserService) GetUser(_ context.Context, identity string) (user.UserResponse, error) {
	return user.UserResponse{ID: identity, Username: "asha"}, nil
}

func (stubUserService) RegisterFace(_ context.Context, _ user.RegisterFaceRequest) error {
	return nil
}

type stubPayrollService struct {
	monthlyCalls int
}

func (s *stubPayrollService) GeneratePayslip(_ context.Context, _ payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	return payroll.PayslipResponse{}, payroll.ErrSalaryNotFound
}

func (s *stubPayrollService) GenerateMonthlyPayroll(_ context.Context, req payroll.GenerateMonthlyPayrollRequest) (payroll.MonthlyPayrollResponse, error) {
	s.monthlyCalls++
	return payroll.MonthlyPayrollResponse{Month: req.Month}, nil
}

func (s *stubPayrollService) GetPayslip(_ context.Context, _, _ string) (payroll.PayslipResponse, error) {
	return payroll.PayslipResponse{}, payroll.ErrPayrollRecordNotFound
}

func (s *stubPayrollService) GetSalaryStructure(_ context.Context, _ string) (payroll.SalaryStructureResponse, error) {
	return payroll.SalaryStructureResponse{}, nil
}

func (s *stubPayrollService) AddSalaryStructure(_ context.Context, _ payroll.AddSalaryStructureRequest) (payroll.SalaryStructureResponse, error) {
	return payroll.SalaryStructureResponse{}, payroll.ErrSalaryStructureExists
}

func (s *stubPayrollService) UpdateSalaryStructure(_ context.Context, _ payroll.UpdateSalaryStructureRequest) (payroll.UpdateSalaryStructureResponse, error) {
	return payroll.UpdateSalaryStructureResponse{}, payroll.ErrNoChanges
}

type stubLeaveService struct {
	claims  auth.Claims
	applied leave.ApplyLeaveRequest
}

func (s *stubLeaveService) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	s.claims, _ = auth.ClaimsFromContext(ctx)
	s.applied = req
	return leave.LeaveRequestResponse{ID: "leave-1", Status: leave.StatusPending}, nil
}

func (s *stubLeaveService) ListLeaves(_ context.Context, _ leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	return []leave.LeaveRequestResponse{}, nil
}

func (s *stubLeaveService) GetLeave(_ context.Context, _ string) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
}

func (s *stubLeaveService) SetLeaveStatus(_ context.Context, _ leave.UpdateLeaveStatusRequest) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
}

func (s *stubLeaveService) UpdateLeave(_ context.Context, _ leave.UpdateLeaveRequest) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{}, nil
}

func (s *stubLeaveService) DeleteLeave(_ context.Context, _ string) error {
	return leave.ErrLeaveRequestNotFound
}

type testServer struct {
	handler    http.Handler
	jwt        jwt.Service
	attendance *stubAttendanceService
	payroll    *stubPayrollService
	leave      *stubLeaveService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		jwt: jwt.NewJWTService(handlerTestSecret, "1h"),
		attendance: &stubAttendanceService{mark: func(req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
			return attendance.MarkAttendanceResponse{Action: req.Action, Status: attendance.StatusPresent, Message: "Checked in as 'Present'"}, nil
		}},
		payroll: &stubPayrollService{},
		leave:   &stubLeaveService{},
	}
	ts.handler = NewRouter(
		config.AppConfig{Env: "test", FrontendURL: "http://localhost:3000", RequestTimeout: 5 * time.Second},
		ts.jwt,
		Handlers{
			Attendance: NewAttendanceHandler(ts.attendance, stubUserService{}),
			User:       NewUserHandler(stubUserService{}),
			Payroll:    NewPayrollHandler(ts.payroll),
			Leave:      NewLeaveHandler(ts.leave),
		},
	)
	return ts
}

func (ts *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateAccessToken("EMP-1", "asha", role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var resp response.Response
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestRouter_Authentication(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rec, resp := ts.do(t, http.MethodGet, "/api/v1/users/EMP-1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, _, err := jwt.NewJWTService(handlerTestSecret, "-1h").GenerateAccessToken("EMP-1", "asha", user.RoleEmployee)
		require.NoError(t, err)

		rec, resp := ts.do(t, http.MethodGet, "/api/v1/users/EMP-1", expired, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token expired", resp.Error.Message)
	})

	t.Run("wrong token type", func(t *testing.T) {
		_, refresh, err := ts.jwt.JWTAuth().Encode(map[string]interface{}{
			"user_id": "EMP-1",
			"type":    "refresh",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		rec, _ := ts.do(t, http.MethodGet, "/api/v1/users/EMP-1", refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		forged, _, err := jwt.NewJWTService("other-secret", "1h").GenerateAccessToken("EMP-1", "asha", user.RoleAdmin)
		require.NoError(t, err)

		rec, _ := ts.do(t, http.MethodGet, "/api/v1/users/EMP-1", forged, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec, resp := ts.do(t, http.MethodGet, "/api/v1/users/EMP-1", ts.token(t, user.RoleEmployee), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
	})

	t.Run("heartbeat is public", func(t *testing.T) {
		rec, _ := ts.do(t, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_AdminOnly(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]string{"month": "2024-03"}

	rec, resp := ts.do(t, http.MethodPost, "/api/v1/payroll/generate-all", ts.token(t, user.RoleEmployee), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	assert.Zero(t, ts.payroll.monthlyCalls)

	rec, resp = ts.do(t, http.MethodPost, "/api/v1/payroll/generate-all", ts.token(t, user.RoleAdmin), body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, ts.payroll.monthlyCalls)

	rec, _ = ts.do(t, http.MethodPut, "/api/v1/leaves/status", ts.token(t, user.RoleEmployee), map[string]string{"id": "x", "status": "Approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = ts.do(t, http.MethodPut, "/api/v1/leaves/status", ts.token(t, user.RoleAdmin), map[string]string{"id": "x", "status": "Approved"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestRouter_MarkAttendanceErrors(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleEmployee)
	body := map[string]interface{}{"id": "EMP-1", "type": "check-in", "location": map[string]float64{"lat": 23.2, "lng": 72.5}}

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: you are 17.16km away. Your location: 23.2000, 72.5000", attendance.ErrOutOfRange), http.StatusForbidden, "OUT_OF_RANGE"},
		{fmt.Errorf("%w: Match: 40.0%%", attendance.ErrFaceMismatch), http.StatusForbidden, "FACE_MISMATCH"},
		{attendance.ErrFaceNotRegistered, http.StatusBadRequest, "FACE_NOT_REGISTERED"},
		{attendance.ErrFaceDataMissing, http.StatusBadRequest, "FACE_DATA_MISSING"},
		{attendance.ErrAlreadyCheckedIn, http.StatusConflict, "ALREADY_CHECKED_IN"},
		{attendance.ErrAlreadyCheckedOut, http.StatusConflict, "ALREADY_CHECKED_OUT"},
		{attendance.ErrNotCheckedIn, http.StatusBadRequest, "NOT_CHECKED_IN"},
		{attendance.ErrInvalidAction, http.StatusBadRequest, "BAD_REQUEST"},
		{user.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{validator.ValidationErrors{{Field: "location", Message: "location is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
	}
	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			ts.attendance.mark = func(attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
				return attendance.MarkAttendanceResponse{}, c.err
			}

			rec, resp := ts.do(t, http.MethodPost, "/api/v1/attendance/mark", token, body)
			assert.Equal(t, c.status, rec.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, c.code, resp.Error.Code)
		})
	}

	t.Run("distance is reported", func(t *testing.T) {
		ts.attendance.mark = func(attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
			return attendance.MarkAttendanceResponse{}, cases[0].err
		}
		_, resp := ts.do(t, http.MethodPost, "/api/v1/attendance/mark", token, body)
		assert.Contains(t, resp.Error.Message, "17.16km away")
	})
}

func TestRouter_MarkAttendance(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleEmployee)

	var got attendance.MarkAttendanceRequest
	ts.attendance.mark = func(req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
		got = req
		return attendance.MarkAttendanceResponse{Action: req.Action, Status: attendance.StatusLate, Message: "Checked in as 'Late'"}, nil
	}

	rec, resp := ts.do(t, http.MethodPost, "/api/v1/attendance/mark", token, `{"id":"EMP-1","username":"asha","type":"check-in","location":{"lat":23.04,"lng":72.56},"descriptor":[0.1,0.2]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Checked in as 'Late'", resp.Message)
	assert.Equal(t, "EMP-1", got.Identity)
	assert.Equal(t, attendance.ActionCheckIn, got.Action)
	require.NotNil(t, got.Location)
	assert.Equal(t, 23.04, got.Location.Lat)
	assert.Equal(t, []float64{0.1, 0.2}, got.Descriptor)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/attendance/mark", token, `{"id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AttendanceQueries(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleEmployee)

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/attendance/today/EMP-1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"status": "Absent"}, resp.Data)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/attendance/today/ghost", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/attendance?date=2024-03-01", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/attendance/users/EMP-1/months/2024-03", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = ts.do(t, http.MethodGet, "/api/v1/attendance/users/EMP-1/months/March", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error.Details, "month")
}

func TestRouter_ApplyLeaveCarriesClaims(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodPost, "/api/v1/leaves", ts.token(t, user.RoleEmployee), map[string]string{
		"leaveType": "Sick",
		"startDate": "2099-01-01",
		"endDate":   "2099-01-02",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "EMP-1", ts.leave.claims.UserID)
	assert.Equal(t, "asha", ts.leave.claims.Username)
	assert.Equal(t, "employee", ts.leave.claims.Role)
	assert.Equal(t, "Sick", ts.leave.applied.LeaveType)
}

func TestRouter_PayrollErrors(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.token(t, user.RoleEmployee)
	admin := ts.token(t, user.RoleAdmin)

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/payroll/generate", employee, map[string]string{"user_id": "EMP-9", "month": "2024-03"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/payroll/EMP-1/2024-03", employee, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/salary", admin, map[string]string{"employee_id": "EMP-1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, resp := ts.do(t, http.MethodPut, "/api/v1/salary", admin, map[string]string{"employee_id": "EMP-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update or no changes made", resp.Error.Message)

	rec, _ = ts.do(t, http.MethodPut, "/api/v1/salary", employee, map[string]string{"employee_id": "EMP-1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_LeaveRoutes(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.token(t, user.RoleEmployee)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/leaves/users/EMP-1", employee, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/leaves", employee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/leaves?status=Pending", ts.token(t, user.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/leaves/leave-9", employee, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(t, http.MethodDelete, "/api/v1/leaves/leave-9", employee, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
