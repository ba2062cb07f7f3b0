package progress

import (
	"math"
	"sort"
	"time"
)

// Day is one entry of the daily history.
type Day struct {
	Date time.Time
	DayStats
}

// Accuracy is the share of correct answers as a whole percentage.
func (d DayStats) Accuracy() int {
	if d.TotalAnswers == 0 {
		return 0
	}
	return int(math.Round(float64(d.CorrectAnswers) / float64(d.TotalAnswers) * 100))
}

// RecentDays returns up to n days of history, most recent first. Entries
// whose key is not a date are left out. n <= 0 returns every day.
func (t *Tracker) RecentDays(n int) []Day {
	days := make([]Day, 0, len(t.history))
	for k, v := range t.history {
		d, err := time.Parse(DateLayout, k)
		if err != nil {
			continue
		}
		days = append(days, Day{Date: d, DayStats: v})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.After(days[j].Date) })
	if n > 0 && len(days) > n {
		days = days[:n]
	}
	return days
}

// Totals sums every day of history.
func (t *Tracker) Totals() DayStats {
	var sum DayStats
	for _, d := range t.history {
		sum.WordsStudied += d.WordsStudied
		sum.CorrectAnswers += d.CorrectAnswers
		sum.TotalAnswers += d.TotalAnswers
	}
	return sum
}
