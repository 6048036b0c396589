package providers

// Notifier delivers transient user-facing notices. Field-scoped validation
// errors never go through here; they surface on the form's error map.
type Notifier interface {
	Success(message, detail string)
	Info(message string)
	Error(message, detail string)
}

// NoopNotifier discards all notices
type NoopNotifier struct{}

func (NoopNotifier) Success(message, detail string) {}
func (NoopNotifier) Info(message string)            {}
func (NoopNotifier) Error(message, detail string)   {}
