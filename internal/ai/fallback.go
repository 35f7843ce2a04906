package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/analytics"
)

// Summarizer is what SummarizeOrFallback needs from the client; a nil
// implementation means "not configured".
type Summarizer interface {
	Summarize(ctx context.Context, snap analytics.WeekSnapshot) (string, error)
}

// FallbackSummary builds the deterministic local synthesis from numbers
// the analytics engine already computed. No network, no randomness: the
// same snapshot always produces the same text, and the text always names
// the total completion count.
func FallbackSummary(snap analytics.WeekSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This week (%s) you completed %d activities across %d days.",
		snap.WeekRangeLabel, snap.Total, snap.ActiveDays)

	if snap.Streak > 0 {
		fmt.Fprintf(&b, " Your current streak is %d day", snap.Streak)
		if snap.Streak != 1 {
			b.WriteString("s")
		}
		b.WriteString(".")
	}
	if snap.AveragePerWeek > 0 {
		fmt.Fprintf(&b, " You average %.1f activities per week.", snap.AveragePerWeek)
	}
	if best, ok := busiestActivity(snap); ok {
		fmt.Fprintf(&b, " Most consistent: %s (%d times).", best.Label, best.Count)
	}
	return b.String()
}

func busiestActivity(snap analytics.WeekSnapshot) (analytics.ActivityCount, bool) {
	var best analytics.ActivityCount
	for _, a := range snap.PerActivity {
		if a.Count > best.Count {
			best = a
		}
	}
	return best, best.Count > 0
}

// SummarizeOrFallback returns the model's synthesis when it succeeds, and
// the local fallback in every failure case: missing credentials, network
// or quota errors, and empty payloads. The summary feature never surfaces
// an error to the user.
func SummarizeOrFallback(ctx context.Context, s Summarizer, snap analytics.WeekSnapshot, log *zap.Logger) string {
	if log == nil {
		log = zap.NewNop()
	}
	if s == nil {
		log.Warn("summary adapter not configured, using local fallback")
		return FallbackSummary(snap)
	}
	text, err := s.Summarize(ctx, snap)
	if err != nil {
		log.Warn("summary adapter failed, using local fallback", zap.Error(err))
		return FallbackSummary(snap)
	}
	return text
}
