package provisioning

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-logr/logr"
)

// LogrObserver implements Observer on top of a logr.Logger so that events
// are emitted as structured key/value records.
type LogrObserver struct {
	logger logr.Logger
}

// NewLogrObserver creates an observer writing to the given logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{logger: logger}
}

// Printf implements Logger.
func (o *LogrObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer. Failed phases are logged as errors.
func (o *LogrObserver) Event(event Event) {
	event = withContextFields(event, nil)

	kv := []any{"type", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		kv = append(kv, k, event.Fields[k])
	}

	if event.Type == EventPhaseFailed {
		o.logger.Error(nil, event.Message, kv...)
		return
	}
	o.logger.Info(event.Message, kv...)
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	kv := make([]any, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		kv = append(kv, k, fields[k])
	}
	return &LogrObserver{logger: o.logger.WithValues(kv...)}
}
