// Package reducer implements the pure state transitions for each store slice.
//
// Reducers are total: every action yields a state, unrecognized actions yield
// the input unchanged. Inputs are never mutated in place.
package reducer

import (
	"github.com/i-melnichenko/store-lab/internal/action"
	"github.com/i-melnichenko/store-lab/internal/state"
)

// Counter reduces the counter slice.
func Counter(s int, a action.Action) int {
	switch a.(type) {
	case action.Increment:
		return s + 1
	case action.Decrement:
		return s - 1
	case action.Reset:
		return 0
	default:
		return s
	}
}

// Employees reduces the employee collection slice.
func Employees(s state.Employees, a action.Action) state.Employees {
	switch v := a.(type) {
	case action.DeleteEmployee:
		return deleteEmployee(s, v.ID)
	case action.CreateEmployee:
		return createEmployee(s, v.Data)
	case action.UpdateEmployee:
		return upsertEmployee(s, v.Data)
	default:
		return s
	}
}

func deleteEmployee(s state.Employees, id int) state.Employees {
	if s.Index(id) < 0 {
		return s
	}
	out := make([]state.Employee, 0, len(s.Employees)-1)
	for _, emp := range s.Employees {
		if emp.ID != id {
			out = append(out, emp)
		}
	}
	return state.Employees{Employees: out}
}

// createEmployee assigns last().ID+1. It does not search for the maximum id,
// so ids can collide once the collection is no longer ordered by id.
func createEmployee(s state.Employees, data action.EmployeeData) state.Employees {
	id := 1
	if last, ok := s.Last(); ok {
		id = last.ID + 1
	}
	return appendEmployee(s, state.Employee{ID: id, Name: data.Name, Salary: data.Salary})
}

// upsertEmployee replaces every record sharing e.ID, or appends e when none does.
func upsertEmployee(s state.Employees, e state.Employee) state.Employees {
	if s.Index(e.ID) < 0 {
		return appendEmployee(s, e)
	}
	out := make([]state.Employee, 0, len(s.Employees))
	for _, emp := range s.Employees {
		if emp.ID == e.ID {
			emp = e
		}
		out = append(out, emp)
	}
	return state.Employees{Employees: out}
}

func appendEmployee(s state.Employees, e state.Employee) state.Employees {
	out := make([]state.Employee, len(s.Employees), len(s.Employees)+1)
	copy(out, s.Employees)
	return state.Employees{Employees: append(out, e)}
}
