package orgquery

// EmployeeIntent is the structured employee-query intent handed to the
// compiler by the intent-producing collaborator. Every field is optional:
// a zero/nil field applies no filter, which is different from an empty
// value supplied explicitly.
type EmployeeIntent struct {
	SelectColumns    []string `json:"select_columns,omitempty"`
	Name             string   `json:"name,omitempty"`
	Department       []string `json:"department,omitempty"`
	IsManager        *bool    `json:"is_manager,omitempty"`
	Location         []string `json:"location,omitempty"`
	ReportsTo        string   `json:"reports_to,omitempty"`
	FromNextBirthday string   `json:"from_next_birthday,omitempty"`
	ToNextBirthday   string   `json:"to_next_birthday,omitempty"`
	Client           []string `json:"client,omitempty"`
	ReturnAsCount    bool     `json:"return_as_count,omitempty"`
	CountSortDesc    bool     `json:"count_sort_desc,omitempty"`
}

// TimeOffIntent is the structured time-off-query intent. From/To date
// expressions may be absolute (YYYY-MM-DD) or relative ("next week").
// SelectColumns doubles as the group-by column list when counting.
type TimeOffIntent struct {
	Window        Window   `json:"type,omitempty"`
	FromDate      string   `json:"from_date,omitempty"`
	ToDate        string   `json:"to_date,omitempty"`
	PolicyType    string   `json:"policy_type,omitempty"`
	Status        string   `json:"status,omitempty"`
	Name          string   `json:"name,omitempty"`
	Department    string   `json:"department,omitempty"`
	DurationMin   *int     `json:"duration_min,omitempty"`
	DurationMax   *int     `json:"duration_max,omitempty"`
	ReturnAsCount bool     `json:"return_as_count,omitempty"`
	CountSortDesc bool     `json:"count_sort_desc,omitempty"`
	SelectColumns []string `json:"select_columns,omitempty"`
}
