package sched

// State is the transport state of the scheduler.
//
// Transitions: Stopped -(Start)-> Playing -(Pause)-> Paused -(Start)->
// Playing; Stop is legal from any state and resets the clock position to 0.
type State uint8

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}
