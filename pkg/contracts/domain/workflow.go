package domain

// Stage identifies one named phase of the preprocessing workflow
type Stage string

const (
	StageImport         Stage = "import"
	StageCleaning       Stage = "cleaning"
	StageSelection      Stage = "selection"
	StageTransformation Stage = "transformation"
	StageReduction      Stage = "reduction"
	StageModeling       Stage = "modeling"
)

// Stages lists every workflow stage in its canonical order.
func Stages() []Stage {
	return []Stage{
		StageImport,
		StageCleaning,
		StageSelection,
		StageTransformation,
		StageReduction,
		StageModeling,
	}
}

// WorkflowStatus maps every stage to its completion flag.
// Flags are advisory: completing a stage does not require earlier stages.
type WorkflowStatus map[Stage]bool

// NewWorkflowStatus returns a status with every stage not started
func NewWorkflowStatus() WorkflowStatus {
	status := make(WorkflowStatus, len(Stages()))
	for _, s := range Stages() {
		status[s] = false
	}
	return status
}

// Completed returns the completed stages in canonical order
func (w WorkflowStatus) Completed() []Stage {
	var done []Stage
	for _, s := range Stages() {
		if w[s] {
			done = append(done, s)
		}
	}
	return done
}

// WorkflowEvent is broadcast to status feed subscribers whenever flags change
type WorkflowEvent struct {
	Action  string         `json:"action"`
	Status  WorkflowStatus `json:"status"`
	Message string         `json:"message,omitempty"`
}
