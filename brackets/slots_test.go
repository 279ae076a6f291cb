package brackets

import (
	"testing"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotToken(t *testing.T) {
	known := map[string]bool{"A": true, "L": true}

	tests := []struct {
		raw  string
		want SlotToken
	}{
		{"1A", SlotToken{Kind: TokenGroupWinner, Group: "A"}},
		{" 2L ", SlotToken{Kind: TokenGroupRunnerUp, Group: "L"}},
		{"best3rd", SlotToken{Kind: TokenBestThird}},
		{"1860 Munich", SlotToken{Kind: TokenLiteral, Name: "1860 Munich"}},
		{"2nd Division XI", SlotToken{Kind: TokenLiteral, Name: "2nd Division XI"}},
		{"Hosts", SlotToken{Kind: TokenLiteral, Name: "Hosts"}},
		{"1", SlotToken{Kind: TokenLiteral, Name: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSlotToken(tt.raw, known)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSlotToken("1Z", known)
	assert.ErrorIs(t, err, ErrUnknownGroup)
	assert.ErrorIs(t, err, ErrConfiguration)

	for _, raw := range []string{"best3rdX", "best3rd_ABCDF"} {
		_, err = ParseSlotToken(raw, known)
		assert.ErrorIs(t, err, ErrInvalidSlotRule, raw)
	}

	_, err = ParseSlotToken("  ", known)
	assert.ErrorIs(t, err, ErrInvalidSlotRule)
}

func TestParseSlotRule(t *testing.T) {
	known := map[string]bool{"A": true, "B": true}

	r, err := ParseSlotRule("R32_01", "1A vs best3rd", known)
	require.NoError(t, err)
	assert.Equal(t, "R32_01", r.Slot)
	assert.Equal(t, "1A", r.Home.String())
	assert.Equal(t, "best3rd", r.Away.String())

	for _, rule := range []string{"1A", "1A vs 2B vs 1B", "1Avs2B"} {
		_, err := ParseSlotRule("R32_02", rule, known)
		assert.ErrorIs(t, err, ErrInvalidSlotRule, rule)
	}

	_, err = ParseSlotRule("R32_03", "1A vs 2C", known)
	assert.ErrorIs(t, err, ErrUnknownGroup)
	assert.Contains(t, err.Error(), "R32_03")
}

func TestParseTemplate(t *testing.T) {
	known := map[string]bool{"A": true, "B": true}

	rules, err := ParseTemplate([]models.SlotConfig{
		{Slot: "R32_02", Rule: "1B vs 2A"},
		{Slot: "R32_01", Rule: "1A vs 2B"},
	}, known)
	require.NoError(t, err)
	assert.Equal(t, "R32_02", rules[0].Slot, "template order is kept")

	_, err = ParseTemplate([]models.SlotConfig{
		{Slot: "R32_01", Rule: "1A vs 2B"},
		{Slot: "R32_01", Rule: "1B vs 2A"},
	}, known)
	assert.ErrorIs(t, err, ErrDuplicateSlot)

	_, err = ParseTemplate(nil, known)
	assert.ErrorIs(t, err, ErrInvalidSlotRule)
}
