package payroll

const (
	RunStatusDraft     = "draft"
	RunStatusCompleted = "completed"
	RunStatusApproved  = "approved"
)
