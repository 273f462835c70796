package engine

import (
	"github.com/rCiDK/test-script-helper/filesystem"
	"github.com/rCiDK/test-script-helper/session"
)

// Phase is the position of the session controller in its workflow.
type Phase int

const (
	// PhaseIdle waits for an export directory and a start.
	PhaseIdle Phase = iota
	// PhaseCollecting accepts steps and images.
	PhaseCollecting
	// PhaseReadyToFinish has one image per step and can be finished.
	PhaseReadyToFinish
	// PhaseDone has written the report for the last test number.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCollecting:
		return "collecting"
	case PhaseReadyToFinish:
		return "ready to finish"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// State is the observable state the UI renders from.
type State struct {
	Phase     Phase
	ExportDir string
	Session   *session.Session

	// Reports already present in ExportDir.
	Reports []filesystem.Report
}

// NewState creates a new State instance.
func NewState() State {
	return State{
		Phase:   PhaseIdle,
		Session: session.New(),
	}
}

// Started reports whether a test range is in progress.
func (s State) Started() bool {
	return s.Phase == PhaseCollecting || s.Phase == PhaseReadyToFinish
}

// DefectEnabled reports whether a defect note can be entered.
func (s State) DefectEnabled() bool {
	return s.Started() && s.Session.Verdict == session.VerdictFail
}
