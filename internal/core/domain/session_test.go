package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

func TestNewSession_FreezesToday(t *testing.T) {
	now := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	s := domain.NewSession("alice", now)

	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, "2024-03-31", s.Today.String())
}
