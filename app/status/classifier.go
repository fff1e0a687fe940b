package status

import "strings"

type State string

const (
	Pending    State = "PENDING"
	Active     State = "ACTIVE"
	Successful State = "SUCCESSFUL"
	Failed     State = "FAILED"
	Cancelled  State = "CANCELLED"
	Completed  State = "COMPLETED"
	Unknown    State = "UNKNOWN"
)

// Tone is the badge variant a view uses for a state.
type Tone string

const (
	TonePending     Tone = "pending"
	ToneActive      Tone = "active"
	ToneSuccess     Tone = "success"
	ToneDestructive Tone = "destructive"
	ToneOutline     Tone = "outline"
)

type Classification struct {
	State State  `json:"state"`
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

var known = map[State]Classification{
	Pending:    {State: Pending, Label: "Pending", Tone: TonePending},
	Active:     {State: Active, Label: "Active", Tone: ToneActive},
	Successful: {State: Successful, Label: "Successful", Tone: ToneSuccess},
	Failed:     {State: Failed, Label: "Failed", Tone: ToneDestructive},
	Cancelled:  {State: Cancelled, Label: "Cancelled", Tone: ToneDestructive},
	Completed:  {State: Completed, Label: "Completed", Tone: ToneSuccess},
}

// Classify never fails: statuses the backend adds later come back as Unknown
// with the raw string as label.
func Classify(raw string) Classification {
	if c, ok := known[State(strings.ToUpper(strings.TrimSpace(raw)))]; ok {
		return c
	}
	return Classification{State: Unknown, Label: raw, Tone: ToneOutline}
}

// IsOpen reports whether money may still move on the payment.
func (s State) IsOpen() bool {
	return s == Pending || s == Active
}

func (s State) IsTerminal() bool {
	switch s {
	case Successful, Failed, Cancelled, Completed:
		return true
	default:
		return false
	}
}
