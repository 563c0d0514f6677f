package mylog

import "context"

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

var New func(name string) Logger

// Logger logs on behalf of a single component. The attemptUID labels all
// log lines that belong to one checkout attempt.
type Logger interface {
	Log(ctx context.Context, attemptUID string, severity Severity, format string, a ...any)
}
