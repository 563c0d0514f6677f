package mylog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/MarcGrol/expresscheckout/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
		// Disable log prefixes such as the default timestamp.
		// Prefix text prevents the message from being parsed as JSON.
		// A timestamp is added when shipping logs to Cloud Logging.
		log.SetFlags(0)
	}
}

type structuredLogger struct {
	componentName string
}

func newGcloudLogger(componentName string) Logger {
	return structuredLogger{
		componentName: componentName,
	}
}

func (l structuredLogger) Log(ctx context.Context, attemptUID string, severity Severity, format string, a ...interface{}) {
	log.Println(logRecord{
		Component: l.componentName,
		Labels:    map[string]string{"attempt": attemptUID},
		Trace:     traceFromContext(ctx),
		Severity:  string(severity),
		Message:   l.componentName + ":" + fmt.Sprintf(format, a...),
	}.String())
}

func traceFromContext(ctx context.Context) string {
	trace, ok := ctx.Value(mycontext.CtxTraceContext{}).(string)
	if !ok {
		return ""
	}
	return trace
}

type logRecord struct {
	Component string            `json:"component,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	Trace     string            `json:"logging.googleapis.com/trace,omitempty"`
	Severity  string            `json:"severity,omitempty"`
	Message   string            `json:"message"`
}

func (r logRecord) String() string {
	out, err := json.Marshal(r)
	if err != nil {
		log.Printf("error marshalling log record: %v", err)
	}

	return string(out)
}
