package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordsToNumbers(t *testing.T) {
	cases := map[string]string{
		"sold three sugar":               "sold 3 sugar",
		"twenty one packets of rice":     "21 packets of rice",
		"twenty-five biscuits":           "25 biscuits",
		"one hundred and five eggs":      "105 eggs",
		"two thousand three hundred":     "2300",
		"two three":                      "2 3",
		"sell soap":                      "sell soap",
		"sold ten.":                      "sold 10",
		"bread and butter":               "bread and butter",
		"sold twelve pieces and biscuit": "sold 12 pieces and biscuit",
	}

	for in, want := range cases {
		assert.Equal(t, want, WordsToNumbers(in), "input %q", in)
	}
}

func TestParseTranscript_SpokenQuantity(t *testing.T) {
	parsed, err := ParseTranscript("sold three sugar")
	require.NoError(t, err)

	assert.Equal(t, 3, parsed.Quantity)
	assert.Equal(t, "sugar", parsed.Phrase)
	assert.Equal(t, "sold 3 sugar", parsed.Normalized)
}

func TestParseTranscript_DigitsAndFiller(t *testing.T) {
	parsed, err := ParseTranscript("Sold 12 pieces Parle G")
	require.NoError(t, err)

	assert.Equal(t, 12, parsed.Quantity)
	assert.Equal(t, "parle g", parsed.Phrase)
}

func TestParseTranscript_DefaultQuantity(t *testing.T) {
	parsed, err := ParseTranscript("sell toor dal")
	require.NoError(t, err)

	assert.Equal(t, DefaultQuantity, parsed.Quantity)
	assert.Equal(t, "toor dal", parsed.Phrase)
}

func TestParseTranscript_FirstRunWins(t *testing.T) {
	parsed, err := ParseTranscript("sold 2 sugar 1kg")
	require.NoError(t, err)

	assert.Equal(t, 2, parsed.Quantity)
	assert.Equal(t, "sugar kg", parsed.Phrase)
}

func TestParseTranscript_FillerInsideWordsIsKept(t *testing.T) {
	parsed, err := ParseTranscript("sold one seller pack")
	require.NoError(t, err)

	assert.Equal(t, 1, parsed.Quantity)
	assert.Equal(t, "seller pack", parsed.Phrase)
}

func TestParseTranscript_Overflow(t *testing.T) {
	_, err := ParseTranscript("sold 99999999999999999999999 sugar")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
