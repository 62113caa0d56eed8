package emit

// NullEmitter discards every event. It is the default emitter when no
// observability backend is configured.
type NullEmitter struct{}

// NewNullEmitter creates an emitter that drops all events.
func NewNullEmitter() *NullEmitter { return &NullEmitter{} }

// Emit discards the event.
func (*NullEmitter) Emit(Event) {}
