// Package compiler turns validated query intents into compiled plans.
// Compilation is deterministic and pure: every stage is a function of the
// intent and the caller-supplied reference time, and each stage failure is
// reported as a stage-tagged error rather than an unhandled fault.
package compiler

import (
	"strings"
	"time"

	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/dayofyear"
	"github.com/orgquery/orgquery/orgquery/plan"
	"github.com/orgquery/orgquery/orgquery/reldate"
)

type employeeStage struct {
	name  string
	apply func(p *plan.Plan, in *orgquery.EmployeeIntent, now time.Time) error
}

var employeeStages = []employeeStage{
	{"name", applyEmployeeName},
	{"manager", applyEmployeeManager},
	{"location", applyEmployeeLocation},
	{"reports_to", applyEmployeeReportsTo},
	{"birthday", applyEmployeeBirthday},
	{"client", applyEmployeeClient},
	{"department", applyEmployeeDepartment},
}

// CompileEmployee normalizes the intent and compiles it into a plan over
// the employee entity. Filter stages apply in a fixed order; the order
// matters only for diagnostic clarity, not for result correctness.
func CompileEmployee(in orgquery.EmployeeIntent, now time.Time) (*plan.Plan, error) {
	if err := orgquery.NormalizeEmployee(&in); err != nil {
		return nil, err
	}

	p := &plan.Plan{Entity: plan.Employee}
	p.Proj = employeeProjection(&in)
	p.Where("active", plan.IsTrue{Col: "is_active"})

	for _, stage := range employeeStages {
		if err := stage.apply(p, &in, now); err != nil {
			return nil, orgquery.StageError(stage.name, err, p.String())
		}
	}
	return p, nil
}

func employeeProjection(in *orgquery.EmployeeIntent) plan.Projection {
	cols := make([]plan.Column, 0, len(in.SelectColumns))
	for _, c := range in.SelectColumns {
		cols = append(cols, plan.Column(c))
	}
	if in.ReturnAsCount {
		return plan.Projection{Count: true, GroupBy: cols, SortDesc: in.CountSortDesc}
	}
	return plan.Projection{Columns: cols}
}

// tokenContains builds the tokenized AND-substring match shared by the
// name filters: every whitespace token must match, case-insensitively.
func tokenContains(col plan.Column, query string) plan.Cond {
	tokens := strings.Fields(query)
	if len(tokens) == 1 {
		return plan.ContainsFold{Col: col, Needle: tokens[0]}
	}
	conds := make([]plan.Cond, 0, len(tokens))
	for _, tok := range tokens {
		conds = append(conds, plan.ContainsFold{Col: col, Needle: tok})
	}
	return plan.And{Conds: conds}
}

func applyEmployeeName(p *plan.Plan, in *orgquery.EmployeeIntent, _ time.Time) error {
	if in.Name != "" {
		p.Where("name", tokenContains("full_name", in.Name))
	}
	return nil
}

func applyEmployeeManager(p *plan.Plan, in *orgquery.EmployeeIntent, _ time.Time) error {
	if in.IsManager != nil {
		p.Where("manager", plan.Compare{Col: "is_manager", Op: plan.Eq, Value: *in.IsManager})
	}
	return nil
}

func applyEmployeeLocation(p *plan.Plan, in *orgquery.EmployeeIntent, _ time.Time) error {
	if len(in.Location) > 0 {
		p.Where("location", plan.InFold{Col: "location", Values: in.Location})
	}
	return nil
}

func applyEmployeeReportsTo(p *plan.Plan, in *orgquery.EmployeeIntent, _ time.Time) error {
	if in.ReportsTo != "" {
		p.Where("reports_to", tokenContains("manager_name", in.ReportsTo))
	}
	return nil
}

func applyEmployeeBirthday(p *plan.Plan, in *orgquery.EmployeeIntent, _ time.Time) error {
	if in.FromNextBirthday == "" && in.ToNextBirthday == "" {
		return nil
	}

	var r dayofyear.Range
	if in.FromNextBirthday != "" {
		d, err := reldate.ParseAbsolute(in.FromNextBirthday)
		if err != nil {
			return orgquery.BirthdayError("from_next_birthday", err)
		}
		md := dayofyear.FromTime(d)
		r.From = &md
	}
	if in.ToNextBirthday != "" {
		d, err := reldate.ParseAbsolute(in.ToNextBirthday)
		if err != nil {
			return orgquery.BirthdayError("to_next_birthday", err)
		}
		md := dayofyear.FromTime(d)
		r.To = &md
	}

	p.Where("birthday", dayOfYearCond("birth_date", r))
	return nil
}

// dayOfYearCond lowers a month/day range into plan conditions. A
// wrapping range becomes OR across the year boundary.
func dayOfYearCond(col plan.Column, r dayofyear.Range) plan.Cond {
	from := func() plan.Cond {
		return plan.MonthDayCmp{Col: col, Op: plan.Gte, Month: r.From.Month, Day: r.From.Day}
	}
	to := func() plan.Cond {
		return plan.MonthDayCmp{Col: col, Op: plan.Lte, Month: r.To.Month, Day: r.To.Day}
	}
	switch {
	case r.From != nil && r.To == nil:
		return from()
	case r.From == nil && r.To != nil:
		return to()
	case r.Wraps():
		return plan.Or{Conds: []plan.Cond{from(), to()}}
	default:
		return plan.And{Conds: []plan.Cond{from(), to()}}
	}
}

func applyEmployeeClient(p *plan.Plan, in *orgquery.EmployeeIntent, _ time.Time) error {
	if len(in.Client) > 0 {
		p.Where("client", plan.InFold{Col: "client", Values: in.Client})
	}
	return nil
}

func applyEmployeeDepartment(p *plan.Plan, in *orgquery.EmployeeIntent, _ time.Time) error {
	if len(in.Department) > 0 {
		p.Where("department", plan.InFold{Col: "department", Values: in.Department})
	}
	return nil
}
