package httphandler

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/port"
)

const navigationHistorySize = 32

var _ port.Navigator = (*NavigationRecorder)(nil)

// A NavigationRecorder keeps the locations requested by the effects so
// the presentation can poll them.
type NavigationRecorder struct {
	mu      sync.Mutex
	history []string
}

func NewNavigationRecorder() *NavigationRecorder {
	return &NavigationRecorder{}
}

func (n *NavigationRecorder) Navigate(path string) {
	const op = "NavigationRecorder.Navigate"

	n.mu.Lock()
	n.history = append(n.history, path)
	if len(n.history) > navigationHistorySize {
		n.history = slices.Clone(n.history[len(n.history)-navigationHistorySize:])
	}
	n.mu.Unlock()

	slog.Debug("navigate", "op", op, "path", path)
}

// Location returns the latest requested location, empty if none.
func (n *NavigationRecorder) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// History returns the requested locations, oldest first.
func (n *NavigationRecorder) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.history)
}
