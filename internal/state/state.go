// Package state defines the slice values owned by the store.
package state

import (
	"math"
	"slices"
)

// Employee is a single record in the employee collection.
type Employee struct {
	ID     int     `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Salary float64 `json:"salary" yaml:"salary"`
}

// Equal reports whether e and other hold the same values. Salaries that are
// both NaN compare equal.
func (e Employee) Equal(other Employee) bool {
	if e.ID != other.ID || e.Name != other.Name {
		return false
	}
	return e.Salary == other.Salary || (math.IsNaN(e.Salary) && math.IsNaN(other.Salary))
}

// Employees is the employee collection slice. Order is insertion order.
type Employees struct {
	Employees []Employee `json:"employees" yaml:"employees"`
}

// Len returns the number of employees in the collection.
func (e Employees) Len() int {
	return len(e.Employees)
}

// Find returns the employee with the given id, if present.
func (e Employees) Find(id int) (Employee, bool) {
	if i := e.Index(id); i >= 0 {
		return e.Employees[i], true
	}
	return Employee{}, false
}

// Index returns the position of the employee with the given id, or -1.
func (e Employees) Index(id int) int {
	return slices.IndexFunc(e.Employees, func(emp Employee) bool {
		return emp.ID == id
	})
}

// Last returns the final element of the collection.
func (e Employees) Last() (Employee, bool) {
	if len(e.Employees) == 0 {
		return Employee{}, false
	}
	return e.Employees[len(e.Employees)-1], true
}

// Equal reports whether both collections hold the same records in the same order.
func (e Employees) Equal(other Employees) bool {
	return slices.EqualFunc(e.Employees, other.Employees, Employee.Equal)
}

// Clone returns a copy that shares no backing array with e.
func (e Employees) Clone() Employees {
	if e.Employees == nil {
		return Employees{}
	}
	return Employees{Employees: slices.Clone(e.Employees)}
}

// Combined is the whole state held by the store, keyed by slice.
type Combined struct {
	Counter   int       `json:"counterNumber" yaml:"counterNumber"`
	Employees Employees `json:"employeesData" yaml:"employeesData"`
}

// Clone returns a deep copy of c.
func (c Combined) Clone() Combined {
	return Combined{
		Counter:   c.Counter,
		Employees: c.Employees.Clone(),
	}
}

// Seed returns the initial state created at process start.
func Seed() Combined {
	return Combined{
		Counter:   0,
		Employees: SeedEmployees(),
	}
}

// SeedEmployees returns the four records the collection starts with.
func SeedEmployees() Employees {
	return Employees{Employees: []Employee{
		{ID: 1, Name: "Hossam", Salary: 22000},
		{ID: 2, Name: "Ahmed", Salary: 25000},
		{ID: 3, Name: "Ali", Salary: 30000},
		{ID: 4, Name: "Ahmed", Salary: 25000},
	}}
}
