package orgquery

import "strings"

// Intent normalization shared by both compilers. Normalization is
// idempotent: applying it to an already-normalized intent is a no-op.

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeList(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NormalizeEmployee trims and lower-cases the intent's free-text fields,
// rewrites projection aliases (country -> location, twitter -> twitter_x)
// and rejects projection columns that do not exist on the employee entity.
func NormalizeEmployee(in *EmployeeIntent) error {
	if len(in.SelectColumns) > 0 {
		renamed := make([]string, 0, len(in.SelectColumns))
		for _, c := range in.SelectColumns {
			c = normalizeText(c)
			if alias, ok := employeeColumnAliases[c]; ok {
				c = alias
			}
			renamed = append(renamed, c)
		}
		in.SelectColumns = renamed

		var invalid []string
		for _, c := range in.SelectColumns {
			if !employeeColumns[c] {
				invalid = append(invalid, c)
			}
		}
		if len(invalid) > 0 {
			return InvalidColumnError(invalid...)
		}
	}

	in.Name = normalizeText(in.Name)
	in.ReportsTo = normalizeText(in.ReportsTo)
	in.FromNextBirthday = strings.TrimSpace(in.FromNextBirthday)
	in.ToNextBirthday = strings.TrimSpace(in.ToNextBirthday)
	in.Department = normalizeList(in.Department)
	in.Location = normalizeList(in.Location)
	in.Client = normalizeList(in.Client)
	return nil
}

// NormalizeTimeOff trims and lower-cases the intent's free-text fields and
// canonicalizes the policy type through the alias table. Date expressions
// are trimmed but left as written; the resolver owns their casing. When
// counting without an explicit column list, the group-by defaults to
// policy_type.
func NormalizeTimeOff(in *TimeOffIntent) {
	if in.Window == "" {
		in.Window = WindowPresent
	}
	in.FromDate = strings.TrimSpace(in.FromDate)
	in.ToDate = strings.TrimSpace(in.ToDate)
	in.PolicyType = normalizeText(in.PolicyType)
	in.Status = normalizeText(in.Status)
	in.Name = normalizeText(in.Name)
	in.Department = normalizeText(in.Department)

	cols := make([]string, 0, len(in.SelectColumns))
	for _, c := range in.SelectColumns {
		c = normalizeText(c)
		if c != "" {
			cols = append(cols, c)
		}
	}
	in.SelectColumns = cols
	if len(in.SelectColumns) == 0 {
		in.SelectColumns = nil
	}

	if in.ReturnAsCount && len(in.SelectColumns) == 0 {
		in.SelectColumns = []string{"policy_type"}
	}

	if in.PolicyType != "" {
		in.PolicyType = CanonicalPolicy(in.PolicyType)
	}
}
