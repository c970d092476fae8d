package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

func TestNormalizeHabitName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "Success: Plain name", input: "Drink Water", want: "Drink Water"},
		{name: "Success: Trims spaces", input: "  Read  ", want: "Read"},
		{name: "Success: Case is preserved", input: "yoga", want: "yoga"},
		{name: "Success: Max length", input: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "Success: Multibyte counted as runes", input: strings.Repeat("é", 100), want: strings.Repeat("é", 100)},
		{name: "Error: Empty", input: "", wantErr: domain.ErrHabitNameEmpty},
		{name: "Error: Only whitespace", input: "   ", wantErr: domain.ErrHabitNameEmpty},
		{name: "Error: Too long", input: strings.Repeat("a", 101), wantErr: domain.ErrHabitNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizeHabitName(tt.input)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
