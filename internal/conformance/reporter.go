package conformance

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Reporter prints a Report for humans.
type Reporter struct {
	w         io.Writer
	success   func(a ...any) string
	failure   func(a ...any) string
	highlight func(a ...any) string
	warning   func(a ...any) string
}

func NewReporter(w io.Writer, noColor bool) *Reporter {
	palette := func(attr color.Attribute) func(a ...any) string {
		c := color.New(attr)
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		return c.SprintFunc()
	}

	return &Reporter{
		w:         w,
		success:   palette(color.FgGreen),
		failure:   palette(color.FgRed),
		highlight: palette(color.FgCyan),
		warning:   palette(color.FgYellow),
	}
}

func (r *Reporter) Header(baseURL string) {
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(r.w, "Essensys server conformance: %s\n", r.highlight(baseURL))
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 60))
}

func (r *Reporter) Print(report Report) {
	executed := make(map[string]StepResult, len(report.Steps))
	for _, s := range report.Steps {
		executed[s.Name] = s
	}

	for i, name := range Steps() {
		step, ok := executed[name]
		switch {
		case !ok:
			fmt.Fprintf(r.w, "%d. %s: %s\n", i+1, r.highlight(name), r.warning("NOT EXECUTED"))
			continue
		case step.Passed:
			fmt.Fprintf(r.w, "%d. %s: %s (%s)\n", i+1, r.highlight(name), r.success("PASSED"), step.Duration)
		default:
			fmt.Fprintf(r.w, "%d. %s: %s (%s)\n", i+1, r.highlight(name), r.failure("FAILED"), step.Duration)
			fmt.Fprintf(r.w, "   %s\n", r.failure(step.Err.Error()))
		}
		for _, w := range step.Warnings {
			fmt.Fprintf(r.w, "   %s %s\n", r.warning("WARNING:"), w)
		}
	}

	fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 60))
	if report.Passed() {
		fmt.Fprintf(r.w, "%s in %s\n", r.success("All checks passed"), report.Duration)
	} else {
		fmt.Fprintf(r.w, "%s in %s\n", r.failure("Conformance failed"), report.Duration)
	}
}
