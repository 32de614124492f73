// Package form validates employee input before it is dispatched. The store
// itself never validates payloads.
package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i-melnichenko/store-lab/internal/action"
	"github.com/i-melnichenko/store-lab/internal/state"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(fmt.Sprintf("form: register finite rule: %v", err))
	}
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// EmployeeInput is the create form. A salary of 0 is accepted.
type EmployeeInput struct {
	Name   string  `validate:"required,max=128"`
	Salary float64 `validate:"finite"`
}

// EmployeeEdit is the edit form. The id is part of the form.
type EmployeeEdit struct {
	ID     int     `validate:"required"`
	Name   string  `validate:"required,max=128"`
	Salary float64 `validate:"finite"`
}

// FieldError names a single failed field and the rule it failed.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(f.Field), f.Rule))
	}
	return "form: invalid " + strings.Join(parts, ", ")
}

// Validate checks v against its struct tags.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("form: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// Create validates in and returns the matching action.
func (in EmployeeInput) Create() (action.CreateEmployee, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := Validate(in); err != nil {
		return action.CreateEmployee{}, err
	}
	return action.Create(action.EmployeeData{Name: in.Name, Salary: in.Salary}), nil
}

// Update validates in and returns the matching action.
func (in EmployeeEdit) Update() (action.UpdateEmployee, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := Validate(in); err != nil {
		return action.UpdateEmployee{}, err
	}
	return action.Update(state.Employee{ID: in.ID, Name: in.Name, Salary: in.Salary}), nil
}

// EditFrom prefills an edit form from an existing employee.
func EditFrom(e state.Employee) EmployeeEdit {
	return EmployeeEdit{ID: e.ID, Name: e.Name, Salary: e.Salary}
}

// ErrNonFiniteSalary is returned for NaN or infinite salaries.
var ErrNonFiniteSalary = errors.New("form: salary must be a finite number")

// ParseSalary parses a decimal salary as typed into a form field.
func ParseSalary(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("form: invalid salary %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("form: invalid salary %q: %w", raw, ErrNonFiniteSalary)
	}
	return v, nil
}

// ParseID parses an employee id.
func ParseID(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("form: invalid id %q: %w", raw, err)
	}
	return v, nil
}
