package lantern

import (
	"context"
	"time"

	"github.com/LanternTeam/Lantern/discord"
)

const DefaultSweepInterval = time.Minute

// RunHistorySweeper periodically demotes channels whose unlimited-history
// cooldown has elapsed back to their bounded message window, and refreshes
// the state population gauges. Blocks until the context is cancelled.
func (s *State) RunHistorySweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			swept := s.sweepChannelHistories(now)
			if swept > 0 {
				s.Logger.Debug("Swept channel histories", "channels", swept)
			}

			CollectStateMetrics(s)
		}
	}
}

func (s *State) sweepChannelHistories(now time.Time) int {
	var swept int

	s.channels.Range(func(_ discord.Snowflake, channel *Channel) bool {
		if channel.sweepHistory(now) {
			swept++
		}

		return false
	})

	return swept
}
