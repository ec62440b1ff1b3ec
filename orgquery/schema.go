package orgquery

import "strings"

// employeeColumns is the full projectable column set of the employee entity.
var employeeColumns = map[string]bool{
	"id":          true,
	"updated_at":  true,
	"full_name":   true,
	"nationality": true,
	"department":  true,
	"is_manager":  true,
	"location":    true,
	"linkedin":    true,
	"twitter_x":   true,
	"facebook":    true,
	"email":       true,
	"is_active":   true,
	"reports_to":  true,
	"birth_date":  true,
	"client":      true,
}

// employeeColumnAliases rewrites incoming projection names before validation.
var employeeColumnAliases = map[string]string{
	"country": "location",
	"twitter": "twitter_x",
}

// timeOffColumns is the fixed projection/group-by set of the time-off
// entity, including the two columns resolved through the employee join.
var timeOffColumns = map[string]bool{
	"id":            true,
	"policy_type":   true,
	"start_date":    true,
	"end_date":      true,
	"status":        true,
	"employee_id":   true,
	"department":    true,
	"employee_name": true,
}

// HasEmployeeColumn reports whether name is a projectable employee column.
func HasEmployeeColumn(name string) bool {
	return employeeColumns[name]
}

// HasTimeOffColumn reports whether name is in the fixed time-off column set.
func HasTimeOffColumn(name string) bool {
	return timeOffColumns[name]
}

// TimeOffColumnSet lists the valid time-off columns in a stable order,
// for validation messages.
func TimeOffColumnSet() []string {
	return []string{"id", "policy_type", "start_date", "end_date", "status", "employee_id", "department", "employee_name"}
}

type policyAlias struct {
	probe     string
	canonical string
}

// policyAliases canonicalizes free-text policy types by substring
// containment on the lower-cased input. Order matters: first match wins.
var policyAliases = []policyAlias{
	{"vacation", "vacation leave"},
	{"sick", "sick leave"},
	{"annual", "annual leave"},
	{"birthday", "birthday day off"},
	{"personal", "personal leave"},
	{"bereavement", "bereavement leave"},
	{"parental", "parental leave"},
	{"maternity", "maternity leave"},
	{"paternity", "paternity leave"},
}

// CanonicalPolicy maps a free-text policy type to its canonical form.
// Unrecognized values pass through unchanged.
func CanonicalPolicy(s string) string {
	lowered := strings.ToLower(s)
	for _, a := range policyAliases {
		if strings.Contains(lowered, a.probe) {
			return a.canonical
		}
	}
	return s
}

// PolicyProbe returns the substring used to match a canonical policy type
// against stored policy-type text, and whether the value is one of the
// known short forms. Unknown values are probed literally.
func PolicyProbe(s string) string {
	lowered := strings.ToLower(s)
	for _, a := range policyAliases {
		if strings.Contains(lowered, a.probe) {
			return a.probe
		}
	}
	return lowered
}
