package notify

import (
	"time"

	"github.com/google/uuid"
)

// Level distinguishes the visual treatment of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Toast is one transient notification.
type Toast struct {
	ID       string
	Level    Level
	Message  string
	Duration time.Duration
}

// Notifier surfaces transient notifications for user-initiated
// actions. Background failures are logged instead, never toasted.
type Notifier interface {
	Success(message string)
	Info(message string)
	Warning(message string)
	Danger(message string)
}

// Sink displays a toast on some surface.
type Sink interface {
	ShowToast(t Toast)
}

const defaultDuration = 4 * time.Second

// ToastNotifier builds toasts and hands them to a display sink.
type ToastNotifier struct {
	sink     Sink
	duration time.Duration
}

// NewToastNotifier creates a notifier with the default display duration.
func NewToastNotifier(sink Sink) *ToastNotifier {
	return &ToastNotifier{sink: sink, duration: defaultDuration}
}

func (n *ToastNotifier) Success(message string) { n.emit(LevelSuccess, message) }
func (n *ToastNotifier) Info(message string)    { n.emit(LevelInfo, message) }
func (n *ToastNotifier) Warning(message string) { n.emit(LevelWarning, message) }
func (n *ToastNotifier) Danger(message string)  { n.emit(LevelDanger, message) }

func (n *ToastNotifier) emit(level Level, message string) {
	n.sink.ShowToast(Toast{
		ID:       uuid.New().String(),
		Level:    level,
		Message:  message,
		Duration: n.duration,
	})
}
