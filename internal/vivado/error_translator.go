package vivado

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrorTranslator converts Vivado log output to user-friendly messages.
// The tool itself only reports failure via exit status; the interesting
// detail is buried in the log.
type ErrorTranslator struct{}

// NewErrorTranslator creates a new error translator.
func NewErrorTranslator() *ErrorTranslator {
	return &ErrorTranslator{}
}

var (
	synthErrRe  = regexp.MustCompile(`ERROR: \[Synth [0-9-]+\] (.+?) \[([^\[\]]+\.s?vh?d?):?([0-9]*)\]`)
	vivadoErrRe = regexp.MustCompile(`ERROR: \[[A-Za-z ]+ [0-9-]+\] .+`)
)

// Translate extracts the relevant failure lines from a Vivado log.
func (t *ErrorTranslator) Translate(log string) string {
	// Elaboration and synthesis errors carry a file location worth
	// surfacing directly.
	if m := synthErrRe.FindStringSubmatch(log); len(m) > 2 {
		loc := m[2]
		if m[3] != "" {
			loc += ":" + m[3]
		}
		return fmt.Sprintf("Synthesis failed: %s (%s)", m[1], loc)
	}

	if strings.Contains(log, "Timing constraints are not met") ||
		strings.Contains(log, "[Timing 38-282]") {
		return "Timing closure failed. Try a different BUILD_SEED or relax the constraints."
	}

	if strings.Contains(log, "[Place 30-") {
		return fmt.Sprintf("Placement failed:\n%s", t.extractErrorDetail(log))
	}

	if strings.Contains(log, "[Route 35-") {
		return fmt.Sprintf("Routing failed:\n%s", t.extractErrorDetail(log))
	}

	if strings.Contains(log, "[Common 17-") && strings.Contains(log, "license") {
		return "Vivado license check failed. Point XILINXD_LICENSE_FILE at your license server."
	}

	return t.extractErrorDetail(log)
}

// extractErrorDetail pulls the ERROR lines out of the log, capped so a
// cascade does not flood the terminal.
func (t *ErrorTranslator) extractErrorDetail(log string) string {
	var relevant []string
	for _, line := range strings.Split(log, "\n") {
		if vivadoErrRe.MatchString(line) {
			relevant = append(relevant, strings.TrimSpace(line))
		}
	}
	if len(relevant) == 0 {
		return "See the build.log in the working directory for details."
	}
	if len(relevant) > 5 {
		relevant = relevant[:5]
		relevant = append(relevant, "... (see build.log for the full output)")
	}
	return strings.Join(relevant, "\n")
}
