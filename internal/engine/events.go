package engine

// EventKind identifies a notification from the OS event bridge.
type EventKind int

const (
	// EventDisplayChanged fires on display-topology changes.
	EventDisplayChanged EventKind = iota
	// EventTaskbarCreated fires when the shell (re)creates its taskbar.
	EventTaskbarCreated
	// EventWindowCreated and EventWindowDestroyed fire for top-level
	// windows and carry the window class name.
	EventWindowCreated
	EventWindowDestroyed
	// EventPeekStarted and EventPeekStopped track the desktop preview.
	EventPeekStarted
	EventPeekStopped
	// EventStartOpened and EventStartClosed track the start menu.
	EventStartOpened
	EventStartClosed
)

// Event is one queued notification.
type Event struct {
	Kind  EventKind
	Class string
}

// Post queues an event for the next tick. Callbacks run on OS-owned
// threads, so they only ever enqueue; the poll loop applies the
// intent. A full queue drops the event, which is safe: every queued
// intent is re-derivable from a later rescan.
func (e *Engine) Post(ev Event) {
	select {
	case e.events <- ev:
	default:
		e.logger.Warn("event queue full, dropping event", "kind", ev.Kind)
	}
}

// drainEvents applies all queued intents. Topology-affecting events
// collapse into a single rebuild.
func (e *Engine) drainEvents() {
	rebuild := false
	for {
		select {
		case ev := <-e.events:
			switch ev.Kind {
			case EventDisplayChanged, EventTaskbarCreated:
				rebuild = true
			case EventWindowCreated, EventWindowDestroyed:
				if ev.Class == classTaskbar || ev.Class == classSecondaryTaskbar {
					rebuild = true
				}
			case EventPeekStarted:
				e.setPeekActive(true)
			case EventPeekStopped:
				e.setPeekActive(false)
			case EventStartOpened:
				e.setStartOpened(true)
			case EventStartClosed:
				e.setStartOpened(false)
			}
		default:
			if rebuild {
				e.Rebuild()
			}
			return
		}
	}
}

func (e *Engine) setPeekActive(active bool) {
	e.mu.Lock()
	e.peekActive = active
	e.mu.Unlock()
}

func (e *Engine) setStartOpened(opened bool) {
	e.mu.Lock()
	e.startOpened = opened
	e.mu.Unlock()
}
