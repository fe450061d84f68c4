// Package notify is the best-effort reporting sink for order and inventory
// events. Failures to deliver a notice never fail the operation that raised it.
package notify

import "context"

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notifier interface {
	Success(ctx context.Context, msg string)
	Warn(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Nop discards every notice.
type Nop struct{}

func (Nop) Success(context.Context, string) {}
func (Nop) Warn(context.Context, string)    {}
func (Nop) Error(context.Context, string)   {}

// Recorder collects notices in memory for tests.
type Recorder struct {
	Notices []Notice
}

type Notice struct {
	Level   Level
	Message string
}

func (r *Recorder) Success(_ context.Context, msg string) {
	r.Notices = append(r.Notices, Notice{LevelSuccess, msg})
}

func (r *Recorder) Warn(_ context.Context, msg string) {
	r.Notices = append(r.Notices, Notice{LevelWarning, msg})
}

func (r *Recorder) Error(_ context.Context, msg string) {
	r.Notices = append(r.Notices, Notice{LevelError, msg})
}

func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, n := range r.Notices {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}
