package validate

// Severity classifies one finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one finding, tied to a component or connection when the
// context is known. Subject is a display name or instance id.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Subject  string   `json:"subject,omitempty"`
}

// Report aggregates every finding from one validation run. Errors block
// downstream processing; warnings and infos never do.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Infos    []Issue `json:"infos"`
}

// OK reports whether the document may proceed to reconstruction.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(subject, format string, args ...any) {
	r.Errors = append(r.Errors, issue(SeverityError, subject, format, args...))
}

func (r *Report) warnf(subject, format string, args ...any) {
	r.Warnings = append(r.Warnings, issue(SeverityWarning, subject, format, args...))
}

func (r *Report) infof(subject, format string, args ...any) {
	r.Infos = append(r.Infos, issue(SeverityInfo, subject, format, args...))
}
