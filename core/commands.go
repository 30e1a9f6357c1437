package core

// CommandKind identifies what a Command asks the frame loop to do.
type CommandKind int

const (
	CommandSetFloat CommandKind = iota
	CommandSetBool
	CommandRegenerateHeight
	CommandSmoothHeight
	CommandRegenerateDensity
	CommandResetTime
	// CommandPatch applies Patch to the parameters, used by settings reloads.
	CommandPatch
)

func (k CommandKind) String() string {
	switch k {
	case CommandSetFloat:
		return "set_float"
	case CommandSetBool:
		return "set_bool"
	case CommandRegenerateHeight:
		return "regenerate_height"
	case CommandSmoothHeight:
		return "smooth_height"
	case CommandRegenerateDensity:
		return "regenerate_density"
	case CommandResetTime:
		return "reset_time"
	case CommandPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// Command is a request from a worker goroutine (tuning server, settings
// watcher) or the keyboard to change scene state.
type Command struct {
	Kind  CommandKind
	Key   string
	Float float64
	Bool  bool
	Patch func(*SceneParameters)
}

// CommandQueue carries commands from other goroutines to the frame loop,
// which drains it once at frame start so every pass of a frame sees the same
// parameters.
type CommandQueue struct {
	ch chan Command
}

// NewCommandQueue creates a queue holding up to size pending commands.
func NewCommandQueue(size int) *CommandQueue {
	if size <= 0 {
		size = 1
	}
	return &CommandQueue{ch: make(chan Command, size)}
}

// Push enqueues c without blocking. It reports false when the queue is full.
func (q *CommandQueue) Push(c Command) bool {
	select {
	case q.ch <- c:
		return true
	default:
		return false
	}
}

// Drain removes and returns every pending command in arrival order.
func (q *CommandQueue) Drain() []Command {
	var out []Command
	for {
		select {
		case c := <-q.ch:
			out = append(out, c)
		default:
			return out
		}
	}
}
