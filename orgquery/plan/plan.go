// Package plan defines the compiled query plan: an ordered list of
// stage-tagged predicate clauses over a small engine-agnostic condition
// vocabulary, plus a projection or aggregation descriptor. A plan is pure
// data; lowering it to executable SQL is the planner's job.
package plan

import (
	"fmt"
	"strings"
	"time"
)

// Entity identifies which relation a plan queries.
type Entity string

const (
	Employee Entity = "employee"
	TimeOff  Entity = "time_off"
)

// Column is a logical column name. For the time-off entity it includes the
// two columns resolved through the employee join (department,
// employee_name); for the employee entity, manager_name addresses the
// self-referential manager relation.
type Column string

// CmpOp is a comparison operator.
type CmpOp int

const (
	Eq CmpOp = iota
	Lt
	Lte
	Gt
	Gte
)

func (op CmpOp) String() string {
	switch op {
	case Eq:
		return "="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	default:
		return "?"
	}
}

// Cond is a filter condition. The vocabulary is deliberately small: it is
// exactly what the two compilers need, and every variant is lowerable to
// any relational engine.
type Cond interface {
	condText() string
}

// And joins conditions conjunctively.
type And struct {
	Conds []Cond
}

// Or joins conditions disjunctively.
type Or struct {
	Conds []Cond
}

// IsTrue asserts a boolean column.
type IsTrue struct {
	Col Column
}

// Compare compares a column against a literal. Date values are carried as
// time.Time and rendered by the planner in the engine's date form.
type Compare struct {
	Col   Column
	Op    CmpOp
	Value any
}

// ContainsFold is a case-insensitive substring match.
type ContainsFold struct {
	Col    Column
	Needle string
}

// InFold is case-insensitive membership in a value list.
type InFold struct {
	Col    Column
	Values []string
}

// MonthDayCmp compares the month/day of a date column against a fixed
// month/day point, lexicographically. Only Gte and Lte are produced.
type MonthDayCmp struct {
	Col   Column
	Op    CmpOp
	Month int
	Day   int
}

// DurationCmp constrains the inclusive day count between the time-off
// entity's start_date and end_date.
type DurationCmp struct {
	Op   CmpOp
	Days int
}

func (c And) condText() string {
	return joinCondText(c.Conds, " AND ")
}

func (c Or) condText() string {
	return joinCondText(c.Conds, " OR ")
}

func (c IsTrue) condText() string {
	return string(c.Col)
}

func (c Compare) condText() string {
	return fmt.Sprintf("%s %s %s", c.Col, c.Op, valueText(c.Value))
}

func (c ContainsFold) condText() string {
	return fmt.Sprintf("lower(%s) contains %q", c.Col, c.Needle)
}

func (c InFold) condText() string {
	return fmt.Sprintf("lower(%s) in (%s)", c.Col, strings.Join(c.Values, ", "))
}

func (c MonthDayCmp) condText() string {
	return fmt.Sprintf("monthday(%s) %s %02d-%02d", c.Col, c.Op, c.Month, c.Day)
}

func (c DurationCmp) condText() string {
	return fmt.Sprintf("duration_days %s %d", c.Op, c.Days)
}

func joinCondText(conds []Cond, sep string) string {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, "("+c.condText()+")")
	}
	return strings.Join(parts, sep)
}

func valueText(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprint(v)
	}
}

// Clause is one predicate produced by a named filter stage.
type Clause struct {
	Stage string
	Cond  Cond
}

// Projection describes what the plan returns. With Count set the plan is a
// distinct-count aggregate, grouped by GroupBy when non-empty and ordered
// by the count (SortDesc direction). Without Count, empty Columns means
// the full record.
type Projection struct {
	Columns  []Column
	Count    bool
	GroupBy  []Column
	SortDesc bool
}

// Plan is the compiler's output artifact.
type Plan struct {
	Entity  Entity
	Proj    Projection
	Clauses []Clause
	Notes   []string
}

// Where appends a stage-tagged clause.
func (p *Plan) Where(stage string, c Cond) {
	p.Clauses = append(p.Clauses, Clause{Stage: stage, Cond: c})
}

// Note records a diagnostic produced during compilation (e.g. a swapped
// date range).
func (p *Plan) Note(format string, args ...any) {
	p.Notes = append(p.Notes, fmt.Sprintf(format, args...))
}

// String renders the plan's diagnostic text form.
func (p *Plan) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "PLAN %s\n", p.Entity)

	switch {
	case p.Proj.Count && len(p.Proj.GroupBy) > 0:
		dir := "asc"
		if p.Proj.SortDesc {
			dir = "desc"
		}
		fmt.Fprintf(&b, "  COUNT BY %s ORDER count %s\n", columnsText(p.Proj.GroupBy), dir)
	case p.Proj.Count:
		fmt.Fprintf(&b, "  COUNT\n")
	case len(p.Proj.Columns) > 0:
		fmt.Fprintf(&b, "  SELECT %s\n", columnsText(p.Proj.Columns))
	default:
		fmt.Fprintf(&b, "  SELECT *\n")
	}

	for _, cl := range p.Clauses {
		fmt.Fprintf(&b, "  [%s] %s\n", cl.Stage, cl.Cond.condText())
	}
	for _, n := range p.Notes {
		fmt.Fprintf(&b, "  note: %s\n", n)
	}
	return b.String()
}

func columnsText(cols []Column) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}
