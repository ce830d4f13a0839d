// Package gamification computes experience points and accuracy badges for
// a completed quiz.
package gamification

// Badge is an accuracy achievement. Each badge is held at most once.
type Badge string

const (
	BadgeNone   Badge = ""
	BadgeGold   Badge = "Gold Aim"
	BadgeSilver Badge = "Silver Aim"
	BadgeBronze Badge = "Bronze Aim"
)

// AllBadges returns the badges from highest to lowest.
func AllBadges() []Badge {
	return []Badge{BadgeGold, BadgeSilver, BadgeBronze}
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	switch b {
	case BadgeGold:
		return "🥇"
	case BadgeSilver:
		return "🥈"
	case BadgeBronze:
		return "🥉"
	default:
		return ""
	}
}

// BadgeFor returns the badge earned at the given accuracy (0-100).
func BadgeFor(accuracy float64) Badge {
	switch {
	case accuracy >= 100:
		return BadgeGold
	case accuracy >= 80:
		return BadgeSilver
	case accuracy >= 60:
		return BadgeBronze
	default:
		return BadgeNone
	}
}
