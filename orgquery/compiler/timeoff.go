package compiler

import (
	"log"
	"time"

	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/plan"
	"github.com/orgquery/orgquery/orgquery/reldate"
)

type timeOffStage struct {
	name  string
	apply func(p *plan.Plan, in *orgquery.TimeOffIntent, now time.Time) error
}

var timeOffStages = []timeOffStage{
	{"window", applyTimeOffWindow},
	{"date_range", applyTimeOffDateRange},
	{"duration", applyTimeOffDuration},
	{"policy", applyTimeOffPolicy},
	{"status", applyTimeOffStatus},
	{"name", applyTimeOffName},
	{"department", applyTimeOffDepartment},
}

// CompileTimeOff normalizes and validates the intent, then compiles it
// into a plan over the time-off entity joined to its owning employee.
// Validation failures surface before any clause is built.
func CompileTimeOff(in orgquery.TimeOffIntent, now time.Time) (*plan.Plan, error) {
	orgquery.NormalizeTimeOff(&in)
	if err := ValidateTimeOff(&in); err != nil {
		return nil, err
	}

	p := &plan.Plan{Entity: plan.TimeOff}
	p.Proj = timeOffProjection(&in)
	p.Where("active", plan.IsTrue{Col: "is_active"})

	for _, stage := range timeOffStages {
		if err := stage.apply(p, &in, now); err != nil {
			return nil, orgquery.StageError(stage.name, err, p.String())
		}
	}
	return p, nil
}

func timeOffProjection(in *orgquery.TimeOffIntent) plan.Projection {
	cols := make([]plan.Column, 0, len(in.SelectColumns))
	for _, c := range in.SelectColumns {
		cols = append(cols, plan.Column(c))
	}
	if in.ReturnAsCount {
		return plan.Projection{Count: true, GroupBy: cols, SortDesc: in.CountSortDesc}
	}
	return plan.Projection{Columns: cols}
}

func applyTimeOffWindow(p *plan.Plan, in *orgquery.TimeOffIntent, now time.Time) error {
	today := reldate.Day(now)
	switch in.Window {
	case orgquery.WindowPast:
		p.Where("window", plan.Compare{Col: "end_date", Op: plan.Lt, Value: today})
	case orgquery.WindowFuture:
		p.Where("window", plan.Compare{Col: "start_date", Op: plan.Gt, Value: today})
	default: // present
		p.Where("window", plan.And{Conds: []plan.Cond{
			plan.Compare{Col: "start_date", Op: plan.Lte, Value: today},
			plan.Compare{Col: "end_date", Op: plan.Gte, Value: today},
		}})
	}
	return nil
}

// applyTimeOffDateRange applies the explicit from/to bounds. With both
// bounds present the predicate is interval overlap: the record starts
// within the range, ends within it, or spans it entirely. An inverted
// range is swapped with a recorded warning rather than rejected. A single
// bound is a one-sided filter on start_date or end_date.
func applyTimeOffDateRange(p *plan.Plan, in *orgquery.TimeOffIntent, now time.Time) error {
	var from, to time.Time
	haveFrom, haveTo := in.FromDate != "", in.ToDate != ""

	if haveFrom {
		d, err := reldate.Resolve(in.FromDate, now)
		if err != nil {
			return orgquery.Wrap(orgquery.ErrInvalidDate, "invalid from_date", err)
		}
		from = d
	}
	if haveTo {
		d, err := reldate.Resolve(in.ToDate, now)
		if err != nil {
			return orgquery.Wrap(orgquery.ErrInvalidDate, "invalid to_date", err)
		}
		to = d
	}

	switch {
	case haveFrom && haveTo:
		if from.After(to) {
			from, to = to, from
			p.Note("swapped from_date and to_date: from_date was after to_date")
			log.Printf("orgquery: swapped from_date and to_date (%s > %s)",
				to.Format("2006-01-02"), from.Format("2006-01-02"))
		}
		p.Where("date_range", plan.Or{Conds: []plan.Cond{
			plan.And{Conds: []plan.Cond{
				plan.Compare{Col: "start_date", Op: plan.Gte, Value: from},
				plan.Compare{Col: "start_date", Op: plan.Lte, Value: to},
			}},
			plan.And{Conds: []plan.Cond{
				plan.Compare{Col: "end_date", Op: plan.Gte, Value: from},
				plan.Compare{Col: "end_date", Op: plan.Lte, Value: to},
			}},
			plan.And{Conds: []plan.Cond{
				plan.Compare{Col: "start_date", Op: plan.Lte, Value: from},
				plan.Compare{Col: "end_date", Op: plan.Gte, Value: to},
			}},
		}})
	case haveFrom:
		p.Where("date_range", plan.Compare{Col: "start_date", Op: plan.Gte, Value: from})
	case haveTo:
		p.Where("date_range", plan.Compare{Col: "end_date", Op: plan.Lte, Value: to})
	}
	return nil
}

func applyTimeOffDuration(p *plan.Plan, in *orgquery.TimeOffIntent, _ time.Time) error {
	if in.DurationMin != nil {
		p.Where("duration", plan.DurationCmp{Op: plan.Gte, Days: *in.DurationMin})
	}
	if in.DurationMax != nil {
		p.Where("duration", plan.DurationCmp{Op: plan.Lte, Days: *in.DurationMax})
	}
	return nil
}

func applyTimeOffPolicy(p *plan.Plan, in *orgquery.TimeOffIntent, _ time.Time) error {
	if in.PolicyType != "" {
		p.Where("policy", plan.ContainsFold{Col: "policy_type", Needle: orgquery.PolicyProbe(in.PolicyType)})
	}
	return nil
}

func applyTimeOffStatus(p *plan.Plan, in *orgquery.TimeOffIntent, _ time.Time) error {
	if in.Status != "" {
		p.Where("status", plan.Compare{Col: "status", Op: plan.Eq, Value: in.Status})
	}
	return nil
}

func applyTimeOffName(p *plan.Plan, in *orgquery.TimeOffIntent, _ time.Time) error {
	if in.Name != "" {
		p.Where("name", tokenContains("employee_name", in.Name))
	}
	return nil
}

// Department matches by substring here; the employee compiler uses list
// membership.
func applyTimeOffDepartment(p *plan.Plan, in *orgquery.TimeOffIntent, _ time.Time) error {
	if in.Department != "" {
		p.Where("department", plan.ContainsFold{Col: "department", Needle: in.Department})
	}
	return nil
}
