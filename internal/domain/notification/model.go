package notification

// Schedule is a user's daily reminder setting.
type Schedule struct {
	Enabled bool   `json:"enabled"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Message string `json:"message"`
}

// reminderState is the persisted blob: the schedule plus the last-checked
// minute marker that keeps the polling timer idempotent.
type reminderState struct {
	Schedule    Schedule `json:"schedule"`
	LastChecked string   `json:"lastChecked"`
}

// minuteLayout formats a time down to the logical minute.
const minuteLayout = "2006-01-02 15:04"
