package reducer

import (
	"slices"
	"testing"

	"github.com/i-melnichenko/store-lab/internal/action"
	"github.com/i-melnichenko/store-lab/internal/state"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state int
		act   action.Action
		want  int
	}{
		{name: "increment", state: 0, act: action.Increment{}, want: 1},
		{name: "decrement below zero", state: 0, act: action.Decrement{}, want: -1},
		{name: "reset positive", state: 12, act: action.Reset{}, want: 0},
		{name: "reset negative", state: -3, act: action.Reset{}, want: 0},
		{name: "employee action ignored", state: 5, act: action.Delete(1), want: 5},
		{name: "unknown ignored", state: 5, act: action.Unknown{Tag: "[x] y"}, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Counter(tt.state, tt.act); got != tt.want {
				t.Fatalf("Counter(%d, %s) = %d, want %d", tt.state, tt.act.Type(), got, tt.want)
			}
		})
	}
}

func TestCounter_RepeatedIncrementAndDecrement(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 50; n++ {
		up, down := 0, 0
		for range n {
			up = Counter(up, action.Increment{})
			down = Counter(down, action.Decrement{})
		}
		if up != n || down != -n {
			t.Fatalf("n=%d: expected %d/%d, got %d/%d", n, n, -n, up, down)
		}
	}
}

func TestEmployees_Delete(t *testing.T) {
	t.Parallel()

	seed := state.SeedEmployees()
	got := Employees(seed, action.Delete(2))

	if want := []int{1, 3, 4}; !slices.Equal(ids(got), want) {
		t.Fatalf("expected ids %v, got %v", want, ids(got))
	}
	if seed.Len() != 4 {
		t.Fatalf("input mutated: %v", seed)
	}
}

func TestEmployees_DeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	seed := state.SeedEmployees()
	got := Employees(seed, action.Delete(999))
	if !got.Equal(seed) {
		t.Fatalf("expected unchanged, got %v", got)
	}
}

func TestEmployees_Create(t *testing.T) {
	t.Parallel()

	seed := state.SeedEmployees()
	got := Employees(seed, action.Create(action.EmployeeData{Name: "X", Salary: 100}))

	last, _ := got.Last()
	if last != (state.Employee{ID: 5, Name: "X", Salary: 100}) {
		t.Fatalf("unexpected last employee %+v", last)
	}
	if got.Len() != 5 || seed.Len() != 4 {
		t.Fatalf("expected lengths 5/4, got %d/%d", got.Len(), seed.Len())
	}
}

func TestEmployees_CreateUsesLastElementID(t *testing.T) {
	t.Parallel()

	// Ids out of order: the new id follows the last element, not the maximum.
	s := state.Employees{Employees: []state.Employee{{ID: 7}, {ID: 2}}}
	got := Employees(s, action.Create(action.EmployeeData{Name: "Y"}))
	if want := []int{7, 2, 3}; !slices.Equal(ids(got), want) {
		t.Fatalf("expected ids %v, got %v", want, ids(got))
	}
}

func TestEmployees_CreateOnEmpty(t *testing.T) {
	t.Parallel()

	got := Employees(state.Employees{}, action.Create(action.EmployeeData{Name: "First", Salary: 1}))
	if want := []int{1}; !slices.Equal(ids(got), want) {
		t.Fatalf("expected ids %v, got %v", want, ids(got))
	}
}

func TestEmployees_UpdateInPlace(t *testing.T) {
	t.Parallel()

	seed := state.SeedEmployees()
	e := state.Employee{ID: 3, Name: "Ali2", Salary: 35000}
	got := Employees(seed, action.Update(e))

	if got.Employees[2] != e {
		t.Fatalf("expected %+v at index 2, got %+v", e, got.Employees[2])
	}
	if seed.Employees[2].Name != "Ali" {
		t.Fatalf("input mutated: %+v", seed.Employees[2])
	}
	if want := []int{1, 2, 3, 4}; !slices.Equal(ids(got), want) {
		t.Fatalf("expected ids %v, got %v", want, ids(got))
	}
}

func TestEmployees_UpdateReplacesEveryDuplicateID(t *testing.T) {
	t.Parallel()

	s := Employees(state.SeedEmployees(), action.Update(state.Employee{ID: 0, Name: "Zero", Salary: 1}))
	s = Employees(s, action.Create(action.EmployeeData{Name: "Dup", Salary: 2}))
	if got, want := ids(s), []int{1, 2, 3, 4, 0, 1}; !slices.Equal(got, want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}

	z := state.Employee{ID: 1, Name: "Z", Salary: 3}
	got := Employees(s, action.Update(z))
	if got.Employees[0] != z || got.Employees[5] != z {
		t.Fatalf("expected both id 1 records replaced, got %+v", got.Employees)
	}
	if got.Len() != s.Len() {
		t.Fatalf("expected length %d, got %d", s.Len(), got.Len())
	}
	if s.Employees[5].Name != "Dup" {
		t.Fatalf("expected input untouched, got %+v", s.Employees[5])
	}
}

func TestEmployees_UpdateMissingAppends(t *testing.T) {
	t.Parallel()

	e := state.Employee{ID: 99, Name: "Z", Salary: 1}
	got := Employees(state.SeedEmployees(), action.Update(e))
	if last, _ := got.Last(); last != e {
		t.Fatalf("expected %+v appended, got %+v", e, last)
	}
}

func TestEmployees_UpdateIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, e := range []state.Employee{
		{ID: 1, Name: "Hossam", Salary: 50000},
		{ID: 4, Name: "Mona", Salary: 1},
	} {
		once := Employees(state.SeedEmployees(), action.Update(e))
		twice := Employees(once, action.Update(e))
		if !once.Equal(twice) {
			t.Fatalf("id=%d: expected %v, got %v", e.ID, once, twice)
		}
	}
}

func TestEmployees_IgnoresOtherActions(t *testing.T) {
	t.Parallel()

	seed := state.SeedEmployees()
	for _, a := range []action.Action{action.Increment{}, action.Reset{}, action.Unknown{Tag: "?"}} {
		if got := Employees(seed, a); !got.Equal(seed) {
			t.Fatalf("%s: expected unchanged, got %v", a.Type(), got)
		}
	}
}

func ids(e state.Employees) []int {
	out := make([]int, 0, e.Len())
	for _, emp := range e.Employees {
		out = append(out, emp.ID)
	}
	return out
}
