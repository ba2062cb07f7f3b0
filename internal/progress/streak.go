package progress

// StreakBonusInterval is the run length of correct answers that earns a
// bonus. Bonuses fire at every positive multiple.
const StreakBonusInterval = 5

// IsStreakMilestone reports whether streak earns the streak bonus.
func IsStreakMilestone(streak int) bool {
	return streak > 0 && streak%StreakBonusInterval == 0
}

// NextStreakMilestone returns the next bonus streak above current.
func NextStreakMilestone(current int) int {
	if current < 0 {
		current = 0
	}
	return (current/StreakBonusInterval + 1) * StreakBonusInterval
}
