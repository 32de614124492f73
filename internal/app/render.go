package app

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/i-melnichenko/store-lab/internal/state"
)

var (
	colorHeader = lipgloss.Color("#20B9B4")
	colorBorder = lipgloss.Color("#2C4A54")
	colorMuted  = lipgloss.Color("#7F8C8D")
)

// renderer formats store state for the terminal.
type renderer struct {
	color   bool
	printer *message.Printer
}

func newRenderer(color bool) *renderer {
	return &renderer{
		color:   color,
		printer: message.NewPrinter(language.English),
	}
}

// Salary formats a salary the way the list view shows it: $22,000.00.
func (r *renderer) Salary(v float64) string {
	return r.printer.Sprintf("$%.2f", v)
}

// Employees renders the collection as a table.
func (r *renderer) Employees(e state.Employees) string {
	if e.Len() == 0 {
		return r.muted("no employees") + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "SALARY")
	if r.color {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cell
			})
	} else {
		plain := lipgloss.NewStyle().Padding(0, 1)
		t = t.StyleFunc(func(int, int) lipgloss.Style { return plain })
	}
	for _, emp := range e.Employees {
		t = t.Row(strconv.Itoa(emp.ID), emp.Name, r.Salary(emp.Salary))
	}
	return t.Render() + "\n"
}

// Employee renders one record on a single line.
func (r *renderer) Employee(e state.Employee) string {
	return "#" + strconv.Itoa(e.ID) + " " + e.Name + " " + r.Salary(e.Salary) + "\n"
}

func (r *renderer) muted(s string) string {
	if !r.color {
		return s
	}
	return lipgloss.NewStyle().Foreground(colorMuted).Render(s)
}
