package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rCiDK/test-script-helper/clip"
	"github.com/rCiDK/test-script-helper/filesystem"
	"github.com/rCiDK/test-script-helper/report"
	"github.com/rCiDK/test-script-helper/session"
)

var (
	// ErrNoExportDir is returned when starting before an export directory is chosen.
	ErrNoExportDir = errors.New("no export location chosen")
	// ErrInvalidExportDir is returned when the export path is not a usable directory.
	ErrInvalidExportDir = errors.New("export location is not a directory")
	// ErrNoTestName is returned when starting with a blank test name.
	ErrNoTestName = errors.New("test name is required")
	// ErrInvalidRange is returned when the start number is negative or past the end.
	ErrInvalidRange = errors.New("start number must be between 0 and the end number")
	// ErrNotStarted is returned for session operations before a start.
	ErrNotStarted = errors.New("test has not been started")
)

// ReportWriter persists a finished test case and returns the file path.
type ReportWriter interface {
	Write(r report.Report) (string, error)
}

// Outcome describes a successfully finished test case.
type Outcome struct {
	Path   string
	Number int
	// Next is the number of the following test case.
	Next int
	// Done is true when Number was the last test case of the range.
	Done bool
}

// Messages

// WatcherMsg indicates a report file changed in the watched directory.
type WatcherMsg struct {
	Dir  string
	Path string
}

// ReportsLoadedMsg carries the report listing of an export directory.
type ReportsLoadedMsg struct {
	Dir     string
	Reports []filesystem.Report
}

// WatcherReadyMsg carries the initialized watcher.
type WatcherReadyMsg struct {
	watcher *filesystem.Watcher
}

// Engine is the session controller.
type Engine struct {
	State      State
	writer     ReportWriter
	clipboard  clip.Reader
	watcher    *filesystem.Watcher
	logger     *zap.Logger
	imageWidth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithImageWidth sets the width pasted screenshots are scaled to.
func WithImageWidth(w int) Option {
	return func(e *Engine) {
		if w > 0 {
			e.imageWidth = w
		}
	}
}

// New creates a new Engine instance.
func New(writer ReportWriter, clipboard clip.Reader, opts ...Option) *Engine {
	e := &Engine{
		State:      NewState(),
		writer:     writer,
		clipboard:  clipboard,
		logger:     zap.NewNop(),
		imageWidth: clip.DefaultWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Update handles watcher messages and returns follow-up commands.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case WatcherReadyMsg:
		if msg.watcher.Dir != e.State.ExportDir {
			// The export directory changed while this watcher was starting.
			msg.watcher.Close()
			return nil
		}
		if e.watcher != nil {
			e.watcher.Close()
		}
		e.watcher = msg.watcher
		return waitForWatcherEvents(e.watcher)

	case WatcherMsg:
		if msg.Dir != e.State.ExportDir || e.watcher == nil {
			return nil
		}
		return tea.Batch(e.RefreshReports(), waitForWatcherEvents(e.watcher))

	case ReportsLoadedMsg:
		if msg.Dir == e.State.ExportDir {
			e.State.Reports = msg.Reports
		}
		return nil
	}
	return nil
}

// Close releases the directory watcher.
func (e *Engine) Close() {
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
}

// SetExportDir selects the directory reports are written to and starts
// watching it.
func (e *Engine) SetExportDir(dir string) (tea.Cmd, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, ErrNoExportDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExportDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExportDir, err)
	}
	if !info.IsDir() {
		return nil, ErrInvalidExportDir
	}

	if e.State.ExportDir == abs {
		return e.RefreshReports(), nil
	}

	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	e.State.ExportDir = abs
	e.State.Reports = nil
	e.logger.Info("Export location set", zap.String("dir", abs))

	return tea.Batch(e.RefreshReports(), e.startWatcher(abs)), nil
}

// Start begins a test range. Any steps collected so far are discarded.
func (e *Engine) Start(name string, start, end int) error {
	if e.State.ExportDir == "" {
		return ErrNoExportDir
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNoTestName
	}
	if start < 0 || start > end {
		return ErrInvalidRange
	}

	s := e.State.Session
	s.Reset()
	s.TestName = name
	s.Current = start
	s.End = end
	e.State.Phase = PhaseCollecting

	e.logger.Info("Test started",
		zap.String("test", name),
		zap.Int("start", start),
		zap.Int("end", end))
	return nil
}

// AddSteps registers every non-blank line of text as a step.
func (e *Engine) AddSteps(text string) (int, error) {
	if !e.State.Started() {
		return 0, ErrNotStarted
	}
	n, err := e.State.Session.AddSteps(text)
	if err != nil {
		return 0, err
	}
	e.updatePhase()
	e.logger.Debug("Steps added", zap.Int("added", n), zap.Int("total", len(e.State.Session.Steps)))
	return n, nil
}

// PasteImage reads the clipboard and attaches the image to the next step
// awaiting one. The returned Result tells "no image" apart from read failures.
func (e *Engine) PasteImage() (clip.Result, error) {
	if !e.State.Started() {
		return clip.Result{}, ErrNotStarted
	}
	if _, _, ok := e.State.Session.PendingStep(); !ok {
		return clip.Result{}, session.ErrNoPendingStep
	}

	res := e.clipboard.Read()
	switch res.Kind {
	case clip.NoImage:
		return res, clip.ErrNoImage
	case clip.ReadFailed:
		e.logger.Warn("Clipboard read failed", zap.Error(res.Err))
		return res, res.Err
	}

	img, err := clip.Resize(res.Image, e.imageWidth)
	if err != nil {
		return clip.Failed(err), err
	}
	if err := e.State.Session.AddImage(img); err != nil {
		return clip.Result{}, err
	}
	e.updatePhase()

	e.logger.Debug("Image pasted",
		zap.Int("images", len(e.State.Session.Images)),
		zap.Int("steps", len(e.State.Session.Steps)))
	return clip.Found(img), nil
}

// ToggleVerdict flips between PASS and FAIL and returns the new verdict.
func (e *Engine) ToggleVerdict() (session.Verdict, error) {
	if !e.State.Started() {
		return e.State.Session.Verdict, ErrNotStarted
	}
	s := e.State.Session
	s.SetVerdict(s.Verdict.Toggle())
	return s.Verdict, nil
}

// SetDefect records the defect note. It is ignored unless the verdict is FAIL.
func (e *Engine) SetDefect(note string) {
	if !e.State.DefectEnabled() {
		return
	}
	e.State.Session.Defect = note
}

// Finish writes the report for the current test case and advances to the
// next number. A rejected or failed finish leaves the state unchanged.
func (e *Engine) Finish() (Outcome, error) {
	if !e.State.Started() {
		return Outcome{}, ErrNotStarted
	}
	s := e.State.Session
	if err := s.Validate(); err != nil {
		return Outcome{}, err
	}

	path, err := e.writer.Write(report.Report{
		TestName: s.TestName,
		Number:   s.Current,
		Steps:    s.Steps,
		Images:   s.Images,
		Verdict:  string(s.Verdict),
		Defect:   s.DefectNote(),
		Dir:      e.State.ExportDir,
	})
	if err != nil {
		e.logger.Error("Report write failed",
			zap.String("test", s.TestName),
			zap.Int("number", s.Current),
			zap.Error(err))
		return Outcome{}, err
	}

	out := Outcome{Path: path, Number: s.Current, Next: s.Current + 1}
	s.Current = out.Next
	s.Reset()
	if s.Current > s.End {
		out.Done = true
		e.State.Phase = PhaseDone
		e.logger.Info("Test range complete", zap.String("test", s.TestName), zap.Int("end", s.End))
	} else {
		e.State.Phase = PhaseCollecting
	}
	return out, nil
}

func (e *Engine) updatePhase() {
	if !e.State.Started() {
		return
	}
	if e.State.Session.Validate() == nil {
		e.State.Phase = PhaseReadyToFinish
	} else {
		e.State.Phase = PhaseCollecting
	}
}

// Internal Commands

// RefreshReports returns a command listing the reports in the current
// export directory.
func (e *Engine) RefreshReports() tea.Cmd {
	dir := e.State.ExportDir
	if dir == "" {
		return nil
	}
	logger := e.logger
	return func() tea.Msg {
		reports, err := filesystem.ListReports(dir)
		if err != nil {
			logger.Warn("Listing reports failed", zap.String("dir", dir), zap.Error(err))
			return nil
		}
		return ReportsLoadedMsg{Dir: dir, Reports: reports}
	}
}

func (e *Engine) startWatcher(dir string) tea.Cmd {
	logger := e.logger
	return func() tea.Msg {
		w, err := filesystem.NewWatcher(dir, logger)
		if err != nil {
			logger.Warn("Watching export location failed", zap.String("dir", dir), zap.Error(err))
			return nil
		}
		return WatcherReadyMsg{watcher: w}
	}
}

func waitForWatcherEvents(w *filesystem.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := w.Next()
		if !ok {
			return nil
		}
		return WatcherMsg{Dir: w.Dir, Path: path}
	}
}
