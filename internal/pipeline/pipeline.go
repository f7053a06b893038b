package pipeline

import (
	"fmt"
	"time"
)

// RunPhases executes phases in order, emitting start/finish events for each.
// The first failing phase aborts the run; everything recorded up to that
// point stays in the state file for the next attempt.
func RunPhases(ctx *Context, phases ...Phase) error {
	for _, phase := range phases {
		ctx.Observer.Event(Event{
			Type:      EventPhaseStarted,
			Message:   phase.Name(),
			Timestamp: time.Now().UTC(),
		})

		start := time.Now()
		if err := phase.Run(ctx); err != nil {
			ctx.Observer.Event(Event{
				Type:      EventPhaseFailed,
				Message:   fmt.Sprintf("%s: %v", phase.Name(), err),
				Timestamp: time.Now().UTC(),
			})
			return fmt.Errorf("phase %s: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:      EventPhaseCompleted,
			Message:   fmt.Sprintf("%s (%s)", phase.Name(), time.Since(start).Round(time.Millisecond)),
			Timestamp: time.Now().UTC(),
		})
	}
	return nil
}
