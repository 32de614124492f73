package store

import (
	"github.com/i-melnichenko/store-lab/internal/action"
	"github.com/i-melnichenko/store-lab/internal/reducer"
	"github.com/i-melnichenko/store-lab/internal/state"
)

// Slice names a reduced portion of the combined state.
type Slice string

// Declared slices.
const (
	CounterSlice   Slice = "counter"
	EmployeesSlice Slice = "employees"
)

// sliceReducer binds one reducer to one slice of the combined state.
type sliceReducer struct {
	name    Slice
	reduce  func(state.Combined, action.Action) state.Combined
	value   func(state.Combined) any
	changed func(prev, next state.Combined) bool
}

var counterSlice = sliceReducer{
	name: CounterSlice,
	reduce: func(c state.Combined, a action.Action) state.Combined {
		c.Counter = reducer.Counter(c.Counter, a)
		return c
	},
	value: func(c state.Combined) any { return c.Counter },
	changed: func(prev, next state.Combined) bool {
		return prev.Counter != next.Counter
	},
}

var employeesSlice = sliceReducer{
	name: EmployeesSlice,
	reduce: func(c state.Combined, a action.Action) state.Combined {
		c.Employees = reducer.Employees(c.Employees, a)
		return c
	},
	value: func(c state.Combined) any { return c.Employees.Clone() },
	changed: func(prev, next state.Combined) bool {
		return !prev.Employees.Equal(next.Employees)
	},
}

// registry holds exactly one reducer per declared slice, in notification order.
var registry = []sliceReducer{counterSlice, employeesSlice}

func lookupSlice(name Slice) (sliceReducer, bool) {
	for _, r := range registry {
		if r.name == name {
			return r, true
		}
	}
	return sliceReducer{}, false
}

// Slices returns the declared slice names in notification order.
func Slices() []Slice {
	out := make([]Slice, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.name)
	}
	return out
}
