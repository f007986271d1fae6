package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates renders the notification emails
type Templates struct {
	templates *template.Template
}

func NewTemplates() (*Templates, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Templates{templates: tmpl}, nil
}

type LeaveDecisionData struct {
	UserName     string
	LeaveType    string
	StartDate    string
	EndDate      string
	Status       string
	Reason       string
	AdminComment string
}

// LeaveDecision renders the "Leave Request <status>" email
func (t *Templates) LeaveDecision(to string, data LeaveDecisionData) (Message, error) {
	color := "#dc3545"
	if data.Status == "Approved" {
		color = "#28a745"
	}

	body, err := t.render("leave_decision.html", struct {
		LeaveDecisionData
		Color string
	}{data, color})
	if err != nil {
		return Message{}, err
	}

	return Message{To: to, Subject: "Leave Request " + data.Status, HTML: body}, nil
}

type SalaryChange struct {
	Field string
	Old   string
	New   string
}

// Label renders a field name for people: pf_percent becomes PF PERCENT
func (c SalaryChange) Label() string {
	return strings.ToUpper(strings.ReplaceAll(c.Field, "_", " "))
}

type SalaryUpdateData struct {
	EmployeeName string
	UpdatedOn    string
	Changes      []SalaryChange
}

func (d SalaryUpdateData) ChangedFields() string {
	labels := make([]string, 0, len(d.Changes))
	for _, c := range d.Changes {
		labels = append(labels, c.Label())
	}
	return strings.Join(labels, ", ")
}

// SalaryUpdate renders the salary change notification
func (t *Templates) SalaryUpdate(to string, data SalaryUpdateData) (Message, error) {
	body, err := t.render("salary_update.html", data)
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Salary Update Notification", HTML: body}, nil
}

func (t *Templates) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := t.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}
