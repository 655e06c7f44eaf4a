package tui

import (
	"time"
)

const (
	maxToasts         = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

// Level is the severity of a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ttl is how long a notice of the level stays up. Failed saves stay longest
// so the reviewer has time to read which string was not stored.
func (l Level) ttl() time.Duration {
	switch l {
	case LevelError:
		return 10 * time.Second
	case LevelWarning:
		return 6 * time.Second
	default:
		return 3 * time.Second
	}
}

// Notice is a message shown to the reviewer as a toast.
type Notice struct {
	Level   Level
	Message string
}

type toast struct {
	notice    Notice
	remaining time.Duration
	repeats   int // extra pushes folded into this toast
}

// ToastController holds the notices currently on screen. A notice equal to
// the newest one is folded into it instead of stacking, which keeps a
// backend that fails every save from filling the screen.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push shows n. Past maxToasts the oldest notice is dropped.
func (c *ToastController) Push(n Notice) {
	if last := len(c.toasts) - 1; last >= 0 && c.toasts[last].notice == n {
		c.toasts[last].repeats++
		c.toasts[last].remaining = n.Level.ttl()
		return
	}

	c.toasts = append(c.toasts, toast{notice: n, remaining: n.Level.ttl()})
	if len(c.toasts) > maxToasts {
		c.toasts = c.toasts[len(c.toasts)-maxToasts:]
	}
}

// Tick counts d off every notice and drops the expired ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss drops the newest notice.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the notices on screen, oldest first.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking reports whether a countdown tick is scheduled.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
