package gamification

import "slices"

// XP rewards.
const (
	XPPerQuestion = 10
	XPPerCorrect  = 2
)

// Award is what a learner earns for one quiz.
type Award struct {
	XP    int   `json:"xpGained"`
	Badge Badge `json:"newBadge,omitempty"`
}

// Profile is a learner's accumulated XP and badges.
type Profile struct {
	Learner string   `json:"learner"`
	XP      int      `json:"xp"`
	Badges  []string `json:"badges"`
}

// Compute returns the award for a quiz with the given score.
// A quiz without questions earns no badge.
func Compute(score, totalQuestions int) Award {
	award := Award{XP: totalQuestions*XPPerQuestion + score*XPPerCorrect}
	if totalQuestions > 0 {
		award.Badge = BadgeFor(float64(score) / float64(totalQuestions) * 100)
	}
	return award
}

// Apply adds the award to the profile. It returns false for the badge flag
// when the badge was already held or none was earned.
func Apply(p *Profile, award Award) (newBadge bool) {
	p.XP += award.XP
	if award.Badge == BadgeNone {
		return false
	}
	if slices.Contains(p.Badges, string(award.Badge)) {
		return false
	}
	p.Badges = append(p.Badges, string(award.Badge))
	return true
}
