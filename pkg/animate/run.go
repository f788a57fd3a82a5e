package animate

import (
	"context"
	"time"
)

// DefaultTick is the frame interval used by Run when tick is not positive.
const DefaultTick = time.Second / 60

// Run advances p in real time until every track is done or ctx is
// cancelled. On cancellation the player is interrupted, so outstanding
// completions report false, and ctx.Err() is returned. onFrame, if not nil,
// is called after every advance.
func Run(ctx context.Context, p *Player, tick time.Duration, onFrame func()) error {
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for !p.Done() {
		select {
		case <-ctx.Done():
			p.Interrupt()
			return ctx.Err()
		case now := <-ticker.C:
			p.Advance(now.Sub(last))
			last = now
			if onFrame != nil {
				onFrame()
			}
		}
	}
	return nil
}
