package decoder

// EventKind tells the kinds of Event apart.
type EventKind string

const (
	TextEvent      EventKind = "text"
	ReferenceEvent EventKind = "reference"
	WarningEvent   EventKind = "warning"
)

// Event is one thing reported while decoding. Text and reference events carry
// a Span; warning events carry a Warning.
type Event struct {
	Kind          EventKind `json:"kind"`
	Value         string    `json:"value,omitempty"`
	Source        string    `json:"source,omitempty"`         // Raw source of a reference
	ReferenceKind string    `json:"reference_kind,omitempty"` // named, decimal or hexadecimal
	Span          *Span     `json:"span,omitempty"`
	Warning       *Warning  `json:"warning,omitempty"`
}

// Recorder collects the events of Parse calls, in the order they happen.
type Recorder struct {
	events []Event
}

// Options returns opts with hooks that record into r. Hooks already set in
// opts still run, after recording.
func (r *Recorder) Options(opts Options) Options {
	onWarning, onReference, onText := opts.OnWarning, opts.OnReference, opts.OnText

	opts.OnWarning = func(message string, point Point, code WarningCode) {
		r.events = append(r.events, Event{
			Kind:    WarningEvent,
			Warning: &Warning{Code: code, Message: message, Point: point},
		})
		if onWarning != nil {
			onWarning(message, point, code)
		}
	}
	opts.OnReference = func(value string, span Span, source string) {
		r.events = append(r.events, Event{
			Kind:          ReferenceEvent,
			Value:         value,
			Source:        source,
			ReferenceKind: kindOf(source).String(),
			Span:          &span,
		})
		if onReference != nil {
			onReference(value, span, source)
		}
	}
	opts.OnText = func(value string, span Span) {
		r.events = append(r.events, Event{Kind: TextEvent, Value: value, Span: &span})
		if onText != nil {
			onText(value, span)
		}
	}
	return opts
}

// Events returns everything recorded so far.
func (r *Recorder) Events() []Event {
	return r.events
}

// Warnings returns the recorded warnings.
func (r *Recorder) Warnings() []*Warning {
	var warnings []*Warning
	for _, e := range r.events {
		if e.Kind == WarningEvent {
			warnings = append(warnings, e.Warning)
		}
	}
	return warnings
}

// Spans returns the text and reference events, which between them cover the
// decoded input without gaps.
func (r *Recorder) Spans() []Event {
	var spans []Event
	for _, e := range r.events {
		if e.Kind != WarningEvent {
			spans = append(spans, e)
		}
	}
	return spans
}
