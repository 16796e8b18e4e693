package progress

// Progress holds one user's monotonically-growing resource sets.
// Both slices behave as sets: inserts are idempotent.
type Progress struct {
	Completed []string `json:"completed"`
	Views     []string `json:"views"`
}
