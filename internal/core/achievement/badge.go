// Package achievement maps streak lengths to badge tiers.
package achievement

import "fmt"

type Badge int

const (
	BadgeNone Badge = iota
	BadgeStarter
	BadgeWarrior
	BadgeChampion
)

const (
	starterThreshold  = 7
	warriorThreshold  = 14
	championThreshold = 30
)

// Evaluate returns the highest tier the streak qualifies for.
func Evaluate(streak int) Badge {
	switch {
	case streak >= championThreshold:
		return BadgeChampion
	case streak >= warriorThreshold:
		return BadgeWarrior
	case streak >= starterThreshold:
		return BadgeStarter
	default:
		return BadgeNone
	}
}

func (b Badge) String() string {
	switch b {
	case BadgeStarter:
		return "starter"
	case BadgeWarrior:
		return "warrior"
	case BadgeChampion:
		return "champion"
	default:
		return "none"
	}
}

// Title is the display label; empty for BadgeNone.
func (b Badge) Title() string {
	switch b {
	case BadgeStarter:
		return "7-Day Starter Streak!"
	case BadgeWarrior:
		return "2-Week Warrior!"
	case BadgeChampion:
		return "30-Day Streak Champion!"
	default:
		return ""
	}
}

func (b Badge) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Badge) UnmarshalText(text []byte) error {
	for _, candidate := range []Badge{BadgeNone, BadgeStarter, BadgeWarrior, BadgeChampion} {
		if candidate.String() == string(text) {
			*b = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown badge %q", text)
}
