// Package format renders chains, corpus listings and compatibility reports
// for the terminal (box tables), for documents (Markdown) and as JSON/YAML.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode selects how a Table is drawn.
type Mode int

const (
	ASCII    Mode = iota // box-drawn terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Column is a table column: its heading, an optional wrap width in cells
// and whether values are right-aligned.
type Column struct {
	Name  string
	Width int
	Right bool
}

// col is shorthand for an unconstrained left-aligned column.
func col(name string) Column { return Column{Name: name} }

// Table collects rows under a fixed set of columns.
type Table struct {
	mode Mode
	w    table.Writer
}

// NewTable starts a table with the given columns. An empty title is omitted.
func NewTable(m Mode, title string, cols ...Column) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	if title != "" {
		w.SetTitle(title)
	}

	header := make(table.Row, 0, len(cols))
	var configs []table.ColumnConfig
	for i, c := range cols {
		header = append(header, c.Name)
		if c.Width == 0 && !c.Right {
			continue
		}
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: c.Width}
		if c.Right {
			cfg.Align = text.AlignRight
		}
		configs = append(configs, cfg)
	}
	w.AppendHeader(header)
	w.SetColumnConfigs(configs)
	return &Table{mode: m, w: w}
}

// Add appends one row; values are printed with fmt.Sprint.
func (t *Table) Add(vals ...any) { t.w.AppendRow(vals) }

// Total sets the footer row.
func (t *Table) Total(vals ...any) { t.w.AppendFooter(vals) }

// Render draws the table.
func (t *Table) Render() string {
	if t.mode == Markdown {
		return t.w.RenderMarkdown()
	}
	return t.w.Render()
}
