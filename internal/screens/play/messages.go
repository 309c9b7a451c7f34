package play

import "time"

// tickMsg drives variant timers. mount ties it to one opening of the
// screen so ticks scheduled before a close are dropped.
type tickMsg struct {
	mount string
	at    time.Time
}
