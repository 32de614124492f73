package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/i-melnichenko/store-lab/internal/action"
	"github.com/i-melnichenko/store-lab/internal/counterdemo"
	"github.com/i-melnichenko/store-lab/internal/form"
	"github.com/i-melnichenko/store-lab/internal/state"
	"github.com/i-melnichenko/store-lab/internal/store"
)

const shellHelp = `Commands:
  inc | dec | reset              counter through the store
  local inc | local dec          counter kept outside the store
  count                          show the store counter
  list                           list employees
  show <id>                      show one employee
  create <name> <salary>         add an employee (id assigned by the store)
  update <id> <name> <salary>    replace or insert an employee
  edit <id> [name=..] [salary=..] patch an existing employee
  delete <id>                    remove an employee
  help                           show this help
  quit                           leave the shell
`

var errQuit = errors.New("quit")

// Shell maps text commands to store dispatches. It plays the role of the
// view layer: it validates input, dispatches, and renders selected slices.
type Shell struct {
	store    *store.Store
	logger   Logger
	render   *renderer
	local    counterdemo.Local
	bound    *counterdemo.Bound
	empSub   *store.Subscription
	employee state.Employees
}

// NewShell subscribes a shell view to s.
func NewShell(s *store.Store, logger Logger, color bool) *Shell {
	sh := &Shell{
		store:  s,
		logger: logger,
		render: newRenderer(color),
		bound:  counterdemo.NewBound(s),
	}
	sh.empSub = s.SelectEmployees(func(_ context.Context, e state.Employees) { sh.employee = e })
	return sh
}

// Close releases the shell's subscriptions.
func (sh *Shell) Close() {
	sh.bound.Close()
	sh.empSub.Unsubscribe()
}

// Run reads commands from in until EOF, quit, or ctx is canceled. Lines are
// read on a separate goroutine so cancellation does not wait for input.
func (sh *Shell) Run(ctx context.Context, in io.Reader, out io.Writer, prompt bool) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		if prompt {
			if _, err := io.WriteString(out, "> "); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		var line string
		select {
		case <-ctx.Done():
			sh.logger.Debug("shell canceled", "error", ctx.Err())
			return nil
		case l, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			line = l
		}

		err := sh.Exec(ctx, line, out)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			sh.logger.Debug("shell command failed", "line", line, "error", err)
			if _, werr := fmt.Fprintf(out, "error: %v\n", err); werr != nil {
				return werr
			}
		}
	}
}

// Exec runs a single command line.
func (sh *Shell) Exec(ctx context.Context, line string, out io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		_, err := io.WriteString(out, shellHelp)
		return err
	case "quit", "exit":
		return errQuit
	case "inc":
		if err := sh.bound.Increment(ctx); err != nil {
			return err
		}
		return sh.printCounter(out, sh.bound.Message())
	case "dec":
		if err := sh.bound.Decrement(ctx); err != nil {
			return err
		}
		return sh.printCounter(out, sh.bound.Message())
	case "reset":
		if err := sh.bound.Reset(ctx); err != nil {
			return err
		}
		return sh.printCounter(out, "")
	case "count":
		return sh.printCounter(out, "")
	case "local":
		return sh.execLocal(args, out)
	case "list":
		_, err := io.WriteString(out, sh.render.Employees(sh.employee))
		return err
	case "show":
		return sh.execShow(args, out)
	case "create":
		return sh.execCreate(ctx, args, out)
	case "update":
		return sh.execUpdate(ctx, args, out)
	case "edit":
		return sh.execEdit(ctx, args, out)
	case "delete":
		return sh.execDelete(ctx, args, out)
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (sh *Shell) printCounter(out io.Writer, msg string) error {
	if msg != "" {
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "counter: %d\n", sh.bound.Value())
	return err
}

func (sh *Shell) execLocal(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: local inc|dec")
	}
	switch strings.ToLower(args[0]) {
	case "inc":
		sh.local.Increment()
	case "dec":
		sh.local.Decrement()
	default:
		return fmt.Errorf("usage: local inc|dec")
	}
	if msg := sh.local.Message(); msg != "" {
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "local counter: %d\n", sh.local.Count())
	return err
}

func (sh *Shell) execShow(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}
	id, err := form.ParseID(args[0])
	if err != nil {
		return err
	}
	emp, ok := sh.employee.Find(id)
	if !ok {
		sh.logger.Warn("employee not found", "id", id)
		_, err := fmt.Fprintf(out, "employee with id %d not found\n", id)
		return err
	}
	_, err = io.WriteString(out, sh.render.Employee(emp))
	return err
}

func (sh *Shell) execCreate(ctx context.Context, args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: create <name> <salary>")
	}
	salary, err := form.ParseSalary(args[1])
	if err != nil {
		return err
	}
	act, err := form.EmployeeInput{Name: args[0], Salary: salary}.Create()
	if err != nil {
		return err
	}
	if err := sh.store.Dispatch(ctx, act); err != nil {
		return err
	}
	last, _ := sh.employee.Last()
	_, err = fmt.Fprintf(out, "created %s", sh.render.Employee(last))
	return err
}

func (sh *Shell) execUpdate(ctx context.Context, args []string, out io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: update <id> <name> <salary>")
	}
	id, err := form.ParseID(args[0])
	if err != nil {
		return err
	}
	salary, err := form.ParseSalary(args[2])
	if err != nil {
		return err
	}
	return sh.dispatchEdit(ctx, form.EmployeeEdit{ID: id, Name: args[1], Salary: salary}, out)
}

// execEdit prefills the form from the selected employee and applies
// key=value patches, like the edit view does.
func (sh *Shell) execEdit(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: edit <id> [name=..] [salary=..]")
	}
	id, err := form.ParseID(args[0])
	if err != nil {
		return err
	}
	emp, ok := sh.store.SelectEmployee(id)
	if !ok {
		sh.logger.Warn("employee not found", "id", id)
		return fmt.Errorf("employee with id %d not found", id)
	}
	edit := form.EditFrom(emp)
	for _, kv := range args[1:] {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("invalid patch %q, expected key=value", kv)
		}
		switch strings.ToLower(key) {
		case "name":
			edit.Name = value
		case "salary":
			if edit.Salary, err = form.ParseSalary(value); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}
	return sh.dispatchEdit(ctx, edit, out)
}

func (sh *Shell) dispatchEdit(ctx context.Context, edit form.EmployeeEdit, out io.Writer) error {
	act, err := edit.Update()
	if err != nil {
		return err
	}
	if err := sh.store.Dispatch(ctx, act); err != nil {
		return err
	}
	emp, _ := sh.employee.Find(act.Data.ID)
	_, err = fmt.Fprintf(out, "saved %s", sh.render.Employee(emp))
	return err
}

func (sh *Shell) execDelete(ctx context.Context, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	id, err := form.ParseID(args[0])
	if err != nil {
		return err
	}
	before := sh.employee.Len()
	if err := sh.store.Dispatch(ctx, action.Delete(id)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "deleted %d record(s)\n", before-sh.employee.Len())
	return err
}

// RunShell starts an interactive shell on the app store.
func (a *App) RunShell(ctx context.Context, in io.Reader, out io.Writer, prompt bool) error {
	sh := NewShell(a.store, a.logger, a.config.Color)
	defer sh.Close()
	a.logger.Debug("shell started", "prompt", prompt)
	return sh.Run(ctx, in, out, prompt)
}
