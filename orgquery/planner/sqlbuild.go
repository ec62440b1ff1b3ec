// Package planner lowers compiled plans to executable SQL. The plan's
// condition vocabulary and logical column names are engine-agnostic; this
// package binds them to the physical schema, the engine's placeholder
// style and the dialect expressions the engines disagree on.
package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/plan"
	"github.com/orgquery/orgquery/orgquery/storage"
	"github.com/orgquery/orgquery/orgquery/storage/sqlbuilder"
)

// Query is the lowered form of a plan: one SQL statement plus its bind
// arguments, ready for database/sql.
type Query struct {
	SQL  string
	Args []any
	// ResultColumns are the logical names of the selected columns, in
	// select-list order. Empty for count plans without grouping.
	ResultColumns []string
}

// employeePhysical maps logical employee columns to their physical form.
// The employees table is aliased e; manager_name resolves through a
// self-join aliased m.
func employeePhysical(col plan.Column) (string, bool) {
	if col == "manager_name" {
		return "m.full_name", true
	}
	return "e." + string(col), false
}

// timeOffPhysical maps logical time-off columns. The time_off table is
// aliased t and is always joined to its owning employee, aliased e, which
// resolves department, employee_name and the active flag.
func timeOffPhysical(col plan.Column) string {
	switch col {
	case "department":
		return "e.department"
	case "employee_name":
		return "e.full_name"
	case "is_active":
		return "e.is_active"
	default:
		return "t." + string(col)
	}
}

type lowering struct {
	entity      plan.Entity
	dialect     storage.Dialect
	b           *sqlbuilder.Builder
	managerJoin bool
}

func (lw *lowering) physical(col plan.Column) string {
	if lw.entity == plan.TimeOff {
		return timeOffPhysical(col)
	}
	phys, joined := employeePhysical(col)
	if joined {
		lw.managerJoin = true
	}
	return phys
}

func (lw *lowering) cond(c plan.Cond) (string, error) {
	switch t := c.(type) {
	case plan.And:
		return lw.join(t.Conds, " AND ")
	case plan.Or:
		return lw.join(t.Conds, " OR ")
	case plan.IsTrue:
		return lw.physical(t.Col), nil
	case plan.Compare:
		return fmt.Sprintf("%s %s %s", lw.physical(t.Col), t.Op, lw.b.Arg(bindValue(t.Value))), nil
	case plan.ContainsFold:
		return fmt.Sprintf("LOWER(%s) LIKE %s",
			lw.physical(t.Col), lw.b.Arg("%"+strings.ToLower(t.Needle)+"%")), nil
	case plan.InFold:
		phs := make([]string, 0, len(t.Values))
		for _, v := range t.Values {
			phs = append(phs, lw.b.Arg(strings.ToLower(v)))
		}
		return fmt.Sprintf("LOWER(%s) IN (%s)", lw.physical(t.Col), strings.Join(phs, ", ")), nil
	case plan.MonthDayCmp:
		return lw.monthDay(t)
	case plan.DurationCmp:
		if lw.entity != plan.TimeOff {
			return "", orgquery.Wrap(orgquery.ErrSQL, "duration condition outside time-off plan", nil)
		}
		expr := lw.dialect.DurationDaysExpr("t.start_date", "t.end_date")
		return fmt.Sprintf("%s %s %s", expr, t.Op, lw.b.Arg(t.Days)), nil
	default:
		return "", orgquery.Wrap(orgquery.ErrSQL, fmt.Sprintf("unknown condition %T", c), nil)
	}
}

func (lw *lowering) join(conds []plan.Cond, sep string) (string, error) {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		s, err := lw.cond(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+s+")")
	}
	return strings.Join(parts, sep), nil
}

// monthDay expands a month/day bound into the lexicographic pair form,
// e.g. Gte 11-15 becomes month > 11 OR (month = 11 AND day >= 15).
func (lw *lowering) monthDay(c plan.MonthDayCmp) (string, error) {
	col := lw.physical(c.Col)
	monthExpr := lw.dialect.MonthExpr(col)
	dayExpr := lw.dialect.DayExpr(col)

	var strict, weak plan.CmpOp
	switch c.Op {
	case plan.Gte:
		strict, weak = plan.Gt, plan.Gte
	case plan.Lte:
		strict, weak = plan.Lt, plan.Lte
	default:
		return "", orgquery.Wrap(orgquery.ErrSQL, fmt.Sprintf("unsupported month/day operator %s", c.Op), nil)
	}

	p1 := lw.b.Arg(c.Month)
	p2 := lw.b.Arg(c.Month)
	p3 := lw.b.Arg(c.Day)
	return fmt.Sprintf("(%s %s %s OR (%s = %s AND %s %s %s))",
		monthExpr, strict, p1, monthExpr, p2, dayExpr, weak, p3), nil
}

func bindValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}

// fullEmployeeColumns is the select list for an employee plan with no
// explicit projection.
var fullEmployeeColumns = []plan.Column{
	"id", "updated_at", "full_name", "nationality", "department", "is_manager",
	"location", "linkedin", "twitter_x", "facebook", "email", "is_active",
	"reports_to", "birth_date", "client",
}

// fullTimeOffColumns is the select list for a time-off plan with no
// explicit projection.
var fullTimeOffColumns = []plan.Column{
	"id", "policy_type", "start_date", "end_date", "status",
	"employee_id", "department", "employee_name",
}

// BuildSQL lowers a compiled plan into a single SQL statement for the
// given dialect and placeholder style. Bind arguments appear in clause
// order; the employee self-join is emitted only when a clause references
// the manager.
func BuildSQL(p *plan.Plan, dialect storage.Dialect, style sqlbuilder.PlaceholderStyle) (*Query, error) {
	lw := &lowering{
		entity:  p.Entity,
		dialect: dialect,
		b:       sqlbuilder.New(style),
	}

	wheres := make([]string, 0, len(p.Clauses))
	for _, cl := range p.Clauses {
		s, err := lw.cond(cl.Cond)
		if err != nil {
			return nil, orgquery.StageError(cl.Stage, err, p.String())
		}
		wheres = append(wheres, "("+s+")")
	}

	var from, countID string
	switch p.Entity {
	case plan.TimeOff:
		from = "time_off t JOIN employees e ON t.employee_id = e.id"
		countID = "t.id"
	default:
		from = "employees e"
		countID = "e.id"
		if lw.managerJoin {
			from += " JOIN employees m ON e.reports_to = m.id"
		}
	}

	q := &Query{}
	var b strings.Builder

	switch {
	case p.Proj.Count && len(p.Proj.GroupBy) > 0:
		selectCols := make([]string, 0, len(p.Proj.GroupBy))
		groupCols := make([]string, 0, len(p.Proj.GroupBy))
		for _, c := range p.Proj.GroupBy {
			phys := lw.physical(c)
			selectCols = append(selectCols, fmt.Sprintf("%s AS %s", phys, c))
			groupCols = append(groupCols, phys)
			q.ResultColumns = append(q.ResultColumns, string(c))
		}
		q.ResultColumns = append(q.ResultColumns, "total")
		fmt.Fprintf(&b, "SELECT %s, COUNT(DISTINCT %s) AS total FROM %s",
			strings.Join(selectCols, ", "), countID, from)
		appendWhere(&b, wheres)
		fmt.Fprintf(&b, " GROUP BY %s ORDER BY total %s", strings.Join(groupCols, ", "), sortDir(p.Proj.SortDesc))

	case p.Proj.Count:
		q.ResultColumns = []string{"total"}
		fmt.Fprintf(&b, "SELECT COUNT(DISTINCT %s) AS total FROM %s", countID, from)
		appendWhere(&b, wheres)

	default:
		cols := p.Proj.Columns
		if len(cols) == 0 {
			if p.Entity == plan.TimeOff {
				cols = fullTimeOffColumns
			} else {
				cols = fullEmployeeColumns
			}
		}
		selectCols := make([]string, 0, len(cols))
		for _, c := range cols {
			selectCols = append(selectCols, fmt.Sprintf("%s AS %s", lw.physical(c), c))
			q.ResultColumns = append(q.ResultColumns, string(c))
		}
		fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(selectCols, ", "), from)
		appendWhere(&b, wheres)
	}

	q.SQL = b.String()
	q.Args = lw.b.Args()
	return q, nil
}

func appendWhere(b *strings.Builder, wheres []string) {
	if len(wheres) == 0 {
		return
	}
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(wheres, " AND "))
}

func sortDir(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
