package form

// Variable names used by item forms.
const (
	VarTask  = "task"
	VarOwner = "owner"
	VarDue   = "due_date"
)

// NewItemDialog builds the three-field task/owner/due date form used to add
// and edit action items.
func NewItemDialog(title string) *Dialog {
	return NewDialog(title,
		[]Field{
			NewTextField("Task", "What needs to happen", ""),
			NewTextField("Owner", "Who (optional)", ""),
			NewTextField("Due date", "When (optional)", ""),
		},
		[]string{VarTask, VarOwner, VarDue},
	)
}
