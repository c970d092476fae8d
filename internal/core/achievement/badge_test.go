package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		streak int
		want   Badge
	}{
		{0, BadgeNone},
		{6, BadgeNone},
		{7, BadgeStarter},
		{13, BadgeStarter},
		{14, BadgeWarrior},
		{29, BadgeWarrior},
		{30, BadgeChampion},
		{365, BadgeChampion},
		{-1, BadgeNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Evaluate(tt.streak), "streak %d", tt.streak)
	}
}

func TestBadge_Labels(t *testing.T) {
	assert.Equal(t, "none", BadgeNone.String())
	assert.Equal(t, "", BadgeNone.Title())
	assert.Equal(t, "starter", BadgeStarter.String())
	assert.Equal(t, "7-Day Starter Streak!", BadgeStarter.Title())
	assert.Equal(t, "warrior", BadgeWarrior.String())
	assert.Equal(t, "2-Week Warrior!", BadgeWarrior.Title())
	assert.Equal(t, "champion", BadgeChampion.String())
	assert.Equal(t, "30-Day Streak Champion!", BadgeChampion.Title())
}

func TestBadge_UnmarshalText(t *testing.T) {
	var b Badge
	assert.NoError(t, b.UnmarshalText([]byte("warrior")))
	assert.Equal(t, BadgeWarrior, b)
	assert.Error(t, b.UnmarshalText([]byte("legend")))
}
