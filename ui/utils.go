package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rCiDK/test-script-helper/clip"
	"github.com/rCiDK/test-script-helper/engine"
	"github.com/rCiDK/test-script-helper/session"
)

var errInvalidNumber = errors.New("start and end numbers must be whole numbers")

// parseRange reads the start and end fields.
func parseRange(start, end string) (int, int, error) {
	s, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, errInvalidNumber
	}
	e, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return 0, 0, errInvalidNumber
	}
	return s, e, nil
}

// guidance names the next step awaiting an image.
func guidance(s *session.Session) string {
	if n, text, ok := s.PendingStep(); ok {
		return fmt.Sprintf("Step %d: %s\nPlease paste an image for this step.", n, text)
	}
	if len(s.Steps) > 0 {
		return "All steps have corresponding images. You can now finish the test."
	}
	return "Enter steps, one per line, and press ctrl+o to add them."
}

// errorMessage turns a controller error into the text shown to the tester.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrNoExportDir):
		return "Please choose an export location first."
	case errors.Is(err, engine.ErrInvalidExportDir):
		return fmt.Sprintf("Cannot use export location: %v", err)
	case errors.Is(err, engine.ErrNotStarted):
		return "Please start the test first (ctrl+s)."
	case errors.Is(err, engine.ErrNoTestName):
		return "Please enter a test name."
	case errors.Is(err, engine.ErrInvalidRange):
		return "Start number must be between 0 and the end number."
	case errors.Is(err, errInvalidNumber):
		return "Start and end numbers must be whole numbers."
	case errors.Is(err, session.ErrNoSteps):
		return "Please enter at least one step before adding."
	case errors.Is(err, session.ErrNoPendingStep):
		return "Every step already has an image. Add more steps or finish the test."
	case errors.Is(err, session.ErrNothingToFinish):
		return "Please add steps and paste images before finishing the test."
	case errors.Is(err, session.ErrMismatch):
		return "The number of steps and images do not match."
	case errors.Is(err, clip.ErrNoImage):
		return fmt.Sprintf("Could not paste image: %v\nPlease copy an image and try again.", err)
	}
	return err.Error()
}

// rejected reports whether err is a guard rejection rather than a failure.
func rejected(err error) bool {
	return errors.Is(err, engine.ErrNotStarted) ||
		errors.Is(err, session.ErrNothingToFinish) ||
		errors.Is(err, session.ErrMismatch)
}
