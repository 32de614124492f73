// Package action defines the closed set of intents the store can reduce.
package action

import "github.com/i-melnichenko/store-lab/internal/state"

// Type is the discriminant tag carried by every action.
type Type string

// Action tags. Each intent has exactly one tag.
const (
	IncrementType      Type = "[Test for Ngrx] Count Increase"
	DecrementType      Type = "[Test for Ngrx] Count Decrease"
	ResetType          Type = "[Test for Ngrx] Count Reset"
	CreateEmployeeType Type = "[Employees List] CREATE_EMPLOYEE"
	UpdateEmployeeType Type = "[Employees List] UPDATE_EMPLOYEE"
	DeleteEmployeeType Type = "[Employees List] DELETE_EMPLOYEE"
)

// Action is an immutable description of a state transition.
// The set of implementations is closed to this package.
type Action interface {
	Type() Type
	sealed()
}

// Increment adds one to the counter.
type Increment struct{}

// Decrement subtracts one from the counter.
type Decrement struct{}

// Reset sets the counter back to zero.
type Reset struct{}

// EmployeeData is the caller-supplied part of a new employee.
// The id is assigned by the reducer.
type EmployeeData struct {
	Name   string
	Salary float64
}

// CreateEmployee appends a new employee with a store-assigned id.
type CreateEmployee struct {
	Data EmployeeData
}

// UpdateEmployee replaces the employee with Data.ID, or appends Data when
// no such employee exists.
type UpdateEmployee struct {
	Data state.Employee
}

// DeleteEmployee removes the employee with ID.
type DeleteEmployee struct {
	ID int
}

// Unknown carries a tag outside the catalog. Reducers leave state unchanged.
type Unknown struct {
	Tag Type
}

func (Increment) Type() Type      { return IncrementType }
func (Decrement) Type() Type      { return DecrementType }
func (Reset) Type() Type          { return ResetType }
func (CreateEmployee) Type() Type { return CreateEmployeeType }
func (UpdateEmployee) Type() Type { return UpdateEmployeeType }
func (DeleteEmployee) Type() Type { return DeleteEmployeeType }
func (u Unknown) Type() Type      { return u.Tag }

func (Increment) sealed()      {}
func (Decrement) sealed()      {}
func (Reset) sealed()          {}
func (CreateEmployee) sealed() {}
func (UpdateEmployee) sealed() {}
func (DeleteEmployee) sealed() {}
func (Unknown) sealed()        {}

// Create returns a CreateEmployee action for data.
func Create(data EmployeeData) CreateEmployee {
	return CreateEmployee{Data: data}
}

// Update returns an UpdateEmployee action for e.
func Update(e state.Employee) UpdateEmployee {
	return UpdateEmployee{Data: e}
}

// Delete returns a DeleteEmployee action for id.
func Delete(id int) DeleteEmployee {
	return DeleteEmployee{ID: id}
}
