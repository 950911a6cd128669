package psdf

import (
	"fmt"
	"path/filepath"
)

// Warning is a non-critical issue found during a build. Warnings do not
// stop a stage, but the generated atlas may not look as intended.
type Warning struct {
	Source string // input file the warning refers to
	Issue  string // human-readable description
}

// String returns a human-readable representation of the warning.
func (w Warning) String() string {
	if w.Source == "" {
		return "[WARNING] " + w.Issue
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Source, w.Issue)
}

// StageReport tells what a stage did.
type StageReport struct {
	Stage    string    // "fonts" or "icons"
	Skipped  string    // reason the stage did not run; empty if it ran
	Tool     string    // path of the tool used
	Built    []string  // sources processed by the external tool
	Cached   []string  // sources reused from a previous build
	Written  []string  // output files written (unchanged files are not listed)
	Warnings []Warning // issues found
}

func newStageReport(stage string) *StageReport {
	return &StageReport{Stage: stage}
}

// skip records why the stage did not run.
func (r *StageReport) skip(format string, args ...interface{}) {
	r.Skipped = fmt.Sprintf(format, args...)
	tracer().Infof("%s: skipped: %s", r.Stage, r.Skipped)
}

// warn records a warning.
func (r *StageReport) warn(source string, format string, args ...interface{}) {
	w := Warning{Source: filepath.Base(source), Issue: fmt.Sprintf(format, args...)}
	r.Warnings = append(r.Warnings, w)
	tracer().Infof("warn: %s", w.Issue)
}

// wrote records an output file if it has been written.
func (r *StageReport) wrote(path string, written bool) {
	if written {
		r.Written = append(r.Written, path)
	}
}

// Report collects the stage reports of a build.
type Report struct {
	Fonts *StageReport
	Icons *StageReport
}

// Warnings returns the warnings of all stages.
func (r *Report) Warnings() []Warning {
	var w []Warning
	for _, s := range []*StageReport{r.Fonts, r.Icons} {
		if s != nil {
			w = append(w, s.Warnings...)
		}
	}
	return w
}

// StageError reports the failure of a stage while processing a source file.
type StageError struct {
	Stage  string // "fonts" or "icons"
	Source string // input file being processed
	Err    error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s/%s: %v", e.Stage, filepath.Base(e.Source), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage, source string, err error) error {
	e := &StageError{Stage: stage, Source: source, Err: err}
	tracer().Errorf("%v", e)
	return e
}
