package progress

// XP awards.
const (
	XPCorrect     = 10
	XPStreakBonus = 20
	XPPerfectTest = 50
	XPGreatTest   = 30

	// GreatTestPercent is the lowest score that earns XPGreatTest.
	GreatTestPercent = 80

	xpPerLevel = 100
)

// CompletionXP returns the bonus for finishing a test with percentage
// correct answers.
func CompletionXP(percentage int) int {
	switch {
	case percentage >= 100:
		return XPPerfectTest
	case percentage >= GreatTestPercent:
		return XPGreatTest
	default:
		return 0
	}
}

// LevelFor returns the level reached with xp points.
func LevelFor(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/xpPerLevel + 1
}
