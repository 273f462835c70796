package session

import (
	"errors"
	"image"
	"strings"
)

// Verdict is the recorded outcome of a test case.
type Verdict string

const (
	// VerdictPass marks a passing test case. It is the default.
	VerdictPass Verdict = "PASS"
	// VerdictFail marks a failing test case.
	VerdictFail Verdict = "FAIL"
)

// Toggle returns the opposite verdict.
func (v Verdict) Toggle() Verdict {
	if v == VerdictFail {
		return VerdictPass
	}
	return VerdictFail
}

var (
	// ErrNoSteps is returned when registered text contains no usable lines.
	ErrNoSteps = errors.New("no steps entered")
	// ErrNoPendingStep is returned when every step already has an image.
	ErrNoPendingStep = errors.New("every step already has an image")
	// ErrNothingToFinish is returned when there are no steps or no images.
	ErrNothingToFinish = errors.New("steps and images are required")
	// ErrMismatch is returned when steps and images differ in count.
	ErrMismatch = errors.New("number of steps and images do not match")
)

// Session holds the steps, images and verdict of the test case in progress.
type Session struct {
	TestName string
	Current  int
	End      int

	Steps   []string
	Images  []image.Image
	Verdict Verdict
	Defect  string
}

// New returns an empty session with a PASS verdict.
func New() *Session {
	return &Session{Verdict: VerdictPass}
}

// SplitSteps splits free text into trimmed, non-empty lines.
func SplitSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// AddSteps appends every non-blank line of text and returns how many were added.
func (s *Session) AddSteps(text string) (int, error) {
	steps := SplitSteps(text)
	if len(steps) == 0 {
		return 0, ErrNoSteps
	}
	s.Steps = append(s.Steps, steps...)
	return len(steps), nil
}

// AddImage attaches img to the first step that has no image yet.
func (s *Session) AddImage(img image.Image) error {
	if len(s.Images) >= len(s.Steps) {
		return ErrNoPendingStep
	}
	s.Images = append(s.Images, img)
	return nil
}

// PendingStep returns the 1-based number and text of the next step awaiting
// an image. ok is false when all steps have images.
func (s *Session) PendingStep() (number int, text string, ok bool) {
	if len(s.Images) >= len(s.Steps) {
		return 0, "", false
	}
	idx := len(s.Images)
	return idx + 1, s.Steps[idx], true
}

// Validate reports whether the session can be written as a report.
func (s *Session) Validate() error {
	if len(s.Steps) == 0 || len(s.Images) == 0 {
		return ErrNothingToFinish
	}
	if len(s.Steps) != len(s.Images) {
		return ErrMismatch
	}
	return nil
}

// SetVerdict records v. Switching away from FAIL drops the defect note.
func (s *Session) SetVerdict(v Verdict) {
	s.Verdict = v
	if v != VerdictFail {
		s.Defect = ""
	}
}

// DefectNote returns the defect note only when the verdict is FAIL.
func (s *Session) DefectNote() string {
	if s.Verdict != VerdictFail {
		return ""
	}
	return strings.TrimSpace(s.Defect)
}

// Reset clears steps, images, verdict and defect. Test name and numbering
// are kept.
func (s *Session) Reset() {
	s.Steps = nil
	s.Images = nil
	s.Verdict = VerdictPass
	s.Defect = ""
}
