package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

func TestLedger_RawRoundTrip(t *testing.T) {
	raw := map[string][]string{
		"Read":     {"2024-01-01", "2024-01-02"},
		"Run":      {},
		"Meditate": {"2024-01-05", "not-a-date"},
	}

	ledger := domain.ParseLedger(raw)

	assert.Equal(t, []string{"Meditate", "Read", "Run"}, ledger.Names())
	assert.Equal(t, raw, ledger.Raw())
}

func TestLedger_Clone(t *testing.T) {
	ledger := domain.ParseLedger(map[string][]string{"Read": {"2024-01-01"}})

	clone := ledger.Clone()
	clone["Run"] = domain.NewDateSet()
	delete(clone, "Read")

	assert.True(t, ledger.Has("Read"))
	assert.False(t, ledger.Has("Run"))
}

func TestLedger_Corruption(t *testing.T) {
	t.Run("Clean ledger", func(t *testing.T) {
		ledger := domain.ParseLedger(map[string][]string{"Read": {"2024-01-01"}})

		assert.Empty(t, ledger.Corruption())
		assert.NoError(t, ledger.Validate())
	})

	t.Run("Each bad entry yields a warning", func(t *testing.T) {
		ledger := domain.ParseLedger(map[string][]string{
			"Read": {"2024-01-01", "2024-02-30"},
			"Run":  {"soon"},
		})

		warnings := ledger.Corruption()
		require.Len(t, warnings, 2)
		assert.Equal(t, domain.WarningDataCorruption, warnings[0].Code)
		assert.Equal(t, "Read", warnings[0].Habit)
		assert.Contains(t, warnings[0].Message, `"2024-02-30"`)
		assert.Equal(t, "Run", warnings[1].Habit)

		assert.ErrorIs(t, ledger.Validate(), domain.ErrDataCorruption)
	})
}

func TestLedger_Lookup(t *testing.T) {
	ledger := domain.ParseLedger(map[string][]string{" run ": {}, "Read": {}})

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "Exact stored name", input: " run ", want: " run ", wantOK: true},
		{name: "Trimmed fallback", input: " Read  ", want: "Read", wantOK: true},
		{name: "Case-sensitive", input: "read", want: "read", wantOK: false},
		{name: "Trimmed form of a padded stored name is not a match", input: "run", want: "run", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ledger.Lookup(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
