package driver

// Status tracks one file through the lint run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusLinting
	StatusFixing
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLinting:
		return "linting"
	case StatusFixing:
		return "fixing"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "queued"
	}
}

// Event is one progress notification. Errors and Warnings are only
// meaningful on StatusDone.
type Event struct {
	Path     string
	Status   Status
	Errors   int
	Warnings int
}
