package models

// UserTaskCount is one row of the admin per-user task totals. Only users
// owning at least one task are reported.
type UserTaskCount struct {
	Email     string
	TaskCount int
}

// CategoryTaskCount is one row of a user's per-category task breakdown.
type CategoryTaskCount struct {
	CategoryName string
	TaskCount    int
}

// UserTaskBreakdown groups a single user's tasks by category.
type UserTaskBreakdown struct {
	Email      string
	Categories []*CategoryTaskCount
}
