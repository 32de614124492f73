package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/i-melnichenko/store-lab/internal/state"
	"github.com/i-melnichenko/store-lab/internal/store"
)

func newTestShell(t *testing.T) (*Shell, *store.Store) {
	t.Helper()
	s := store.New(state.Seed(), slog.Default(), nil, nil)
	sh := NewShell(s, slog.Default(), false)
	t.Cleanup(sh.Close)
	return sh, s
}

func exec(t *testing.T, sh *Shell, line string) string {
	t.Helper()
	var out bytes.Buffer
	if err := sh.Exec(context.Background(), line, &out); err != nil {
		t.Fatalf("Exec(%q) error = %v", line, err)
	}
	return out.String()
}

func TestShell_Counter(t *testing.T) {
	t.Parallel()

	sh, s := newTestShell(t)
	out := exec(t, sh, "inc")
	if !strings.Contains(out, "counter: 1") || !strings.Contains(out, "(with ngrx) Increment") {
		t.Fatalf("unexpected output %q", out)
	}
	exec(t, sh, "inc")
	exec(t, sh, "dec")
	if got := s.GetState().Counter; got != 1 {
		t.Fatalf("expected counter=1, got %d", got)
	}
	if out := exec(t, sh, "reset"); out != "counter: 0\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestShell_LocalCounterDoesNotTouchStore(t *testing.T) {
	t.Parallel()

	sh, s := newTestShell(t)
	out := exec(t, sh, "local inc")
	if !strings.Contains(out, "(without ngrx)") || !strings.Contains(out, "local counter: 1") {
		t.Fatalf("unexpected output %q", out)
	}
	if got := s.GetState().Counter; got != 0 {
		t.Fatalf("expected store counter untouched, got %d", got)
	}
}

func TestShell_EmployeeFlow(t *testing.T) {
	t.Parallel()

	sh, s := newTestShell(t)

	if out := exec(t, sh, "delete 2"); out != "deleted 1 record(s)\n" {
		t.Fatalf("unexpected delete output %q", out)
	}
	if out := exec(t, sh, "create Sara 40000"); out != "created #5 Sara $40,000.00\n" {
		t.Fatalf("unexpected create output %q", out)
	}
	if out := exec(t, sh, "edit 3 name=Ali2 salary=35000"); out != "saved #3 Ali2 $35,000.00\n" {
		t.Fatalf("unexpected edit output %q", out)
	}
	if out := exec(t, sh, "update 99 Zed 10"); out != "saved #99 Zed $10.00\n" {
		t.Fatalf("unexpected update output %q", out)
	}
	if out := exec(t, sh, "delete 999"); out != "deleted 0 record(s)\n" {
		t.Fatalf("unexpected delete output %q", out)
	}

	got := s.GetState().Employees
	want := []state.Employee{
		{ID: 1, Name: "Hossam", Salary: 22000},
		{ID: 3, Name: "Ali2", Salary: 35000},
		{ID: 4, Name: "Ahmed", Salary: 25000},
		{ID: 5, Name: "Sara", Salary: 40000},
		{ID: 99, Name: "Zed", Salary: 10},
	}
	if !got.Equal(state.Employees{Employees: want}) {
		t.Fatalf("expected %+v, got %+v", want, got.Employees)
	}

	list := exec(t, sh, "list")
	for _, name := range []string{"Hossam", "Ali2", "Sara", "$22,000.00"} {
		if !strings.Contains(list, name) {
			t.Fatalf("expected %q in list:\n%s", name, list)
		}
	}
	if strings.Contains(list, "Ali ") {
		t.Fatalf("stale record in list:\n%s", list)
	}
}

func TestShell_Show(t *testing.T) {
	t.Parallel()

	sh, _ := newTestShell(t)
	if out := exec(t, sh, "show 1"); out != "#1 Hossam $22,000.00\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := exec(t, sh, "show 42"); out != "employee with id 42 not found\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestShell_Errors(t *testing.T) {
	t.Parallel()

	sh, s := newTestShell(t)
	tests := []struct {
		line    string
		wantErr string
	}{
		{line: "create", wantErr: "usage"},
		{line: "create Bob lots", wantErr: "invalid salary"},
		{line: "create Bob NaN", wantErr: "finite"},
		{line: "update 3 Ali Inf", wantErr: "finite"},
		{line: "edit 3 salary=nan", wantErr: "finite"},
		{line: "delete x", wantErr: "invalid id"},
		{line: "edit 42 name=x", wantErr: "not found"},
		{line: "edit 1 age=3", wantErr: "unknown field"},
		{line: "edit 1 name", wantErr: "key=value"},
		{line: "local up", wantErr: "usage"},
		{line: "fly", wantErr: "unknown command"},
	}
	for _, tt := range tests {
		err := sh.Exec(context.Background(), tt.line, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Fatalf("Exec(%q): expected error containing %q, got %v", tt.line, tt.wantErr, err)
		}
	}
	if !s.GetState().Employees.Equal(state.SeedEmployees()) {
		t.Fatalf("failed commands must not change state")
	}
}

func TestShell_Run(t *testing.T) {
	t.Parallel()

	sh, s := newTestShell(t)
	in := strings.NewReader("# comment\n\ninc\nbogus\ninc\nquit\ninc\n")
	var out bytes.Buffer
	if err := sh.Run(context.Background(), in, &out, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := s.GetState().Counter; got != 2 {
		t.Fatalf("expected counter=2 (stopped at quit), got %d", got)
	}
	if !strings.Contains(out.String(), `error: unknown command "bogus"`) {
		t.Fatalf("expected error line in output:\n%s", out.String())
	}
}

func TestShell_RunStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	sh, s := newTestShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sh.Run(ctx, strings.NewReader("inc\n"), &bytes.Buffer{}, true); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := s.GetState().Counter; got != 0 {
		t.Fatalf("expected nothing dispatched, got %d", got)
	}
}

func TestShell_RunReturnsOnCancelWhileWaitingForInput(t *testing.T) {
	t.Parallel()

	sh, _ := newTestShell(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx, pr, &bytes.Buffer{}, false) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run() did not return after cancel while blocked on input")
	}
}

func TestShell_CloseReleasesSubscriptions(t *testing.T) {
	t.Parallel()

	s := store.New(state.Seed(), nil, nil, nil)
	sh := NewShell(s, slog.Default(), false)
	sh.Close()
	sh.Close()

	if sh.empSub.Active() {
		t.Fatalf("expected employee subscription closed")
	}
}
