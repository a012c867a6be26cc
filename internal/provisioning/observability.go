package provisioning

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "repository", "pull-request-check")
	Message   string            // Human-readable message
	Resource  string            // Resource name/path if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceSkipped indicates an optional resource was not created.
	EventResourceSkipped EventType = "resource.skipped"

	// EventPermissionGranted indicates a statement was added to a role.
	EventPermissionGranted EventType = "permission.granted"
	// EventSuppressionAdded indicates a scanner suppression was registered.
	EventSuppressionAdded EventType = "suppression.added"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
)

// ConsoleObserver implements Observer using standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	log.Print(formatEvent(withContextFields(event, o.contextFields)))
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := maps.Clone(o.contextFields)
	if newFields == nil {
		newFields = make(map[string]string)
	}
	maps.Copy(newFields, fields)

	return &ConsoleObserver{
		contextFields: newFields,
	}
}

// withContextFields stamps the event and merges observer fields that the
// event does not set itself.
func withContextFields(event Event, contextFields map[string]string) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := make(map[string]string, len(event.Fields)+len(contextFields))
	maps.Copy(fields, contextFields)
	maps.Copy(fields, event.Fields)
	event.Fields = fields
	return event
}

// formatEvent formats an event for console output. Fields are sorted by key.
func formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// FieldDurationSeconds carries a completed phase's duration in fractional seconds.
const FieldDurationSeconds = "duration_seconds"

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Microsecond)),
		Fields: map[string]string{
			FieldDurationSeconds: strconv.FormatFloat(duration.Seconds(), 'f', -1, 64),
		},
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceSkipped logs an optional resource that was not created.
func LogResourceSkipped(observer Observer, phase, resourceType, reason string) {
	observer.Event(Event{
		Type:    EventResourceSkipped,
		Phase:   phase,
		Message: fmt.Sprintf("%s skipped: %s", resourceType, reason),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogPermissionGranted logs a statement added to a role policy.
func LogPermissionGranted(observer Observer, phase, role string, actions []string) {
	observer.Event(Event{
		Type:     EventPermissionGranted,
		Phase:    phase,
		Resource: role,
		Message:  fmt.Sprintf("granted %s", strings.Join(actions, ",")),
	})
}

// LogSuppressionAdded logs a registered scanner suppression.
func LogSuppressionAdded(observer Observer, phase, scope string, ruleIDs []string) {
	observer.Event(Event{
		Type:     EventSuppressionAdded,
		Phase:    phase,
		Resource: scope,
		Message:  fmt.Sprintf("suppressed %s", strings.Join(ruleIDs, ",")),
	})
}
