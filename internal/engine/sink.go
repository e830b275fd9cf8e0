package engine

// Event levels, ordered by severity.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Event is a single diagnostic emitted while scoring. Minutes is zero
// for events that are not tied to one window.
type Event struct {
	Level   string
	Message string
	Symbol  string
	Minutes int
	Err     error
}

// Sink receives diagnostic events from an Analyzer. Implementations
// must be safe for concurrent use; Record must not block.
type Sink interface {
	Record(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Record(Event) {}
