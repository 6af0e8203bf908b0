package voice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidQuantity is returned when the spoken quantity does not fit an int.
var ErrInvalidQuantity = errors.New("spoken quantity is not a valid number")

// DefaultQuantity is assumed when the utterance names no quantity.
const DefaultQuantity = 1

var (
	digitRun    = regexp.MustCompile(`\d+`)
	fillerWords = regexp.MustCompile(`\b(?:sold|sell|pieces|piece)\b`)
)

// ParsedTranscript is what the sales flow extracts from one utterance.
type ParsedTranscript struct {
	Transcript string `json:"transcript"`
	Normalized string `json:"normalized"`
	Quantity   int    `json:"quantity"`
	Phrase     string `json:"phrase"`
}

// ParseTranscript takes the first run of digits (after number words are
// normalized) as the quantity and strips filler words and digits to form the
// product search phrase.
func ParseTranscript(transcript string) (ParsedTranscript, error) {
	text := strings.ToLower(strings.TrimSpace(transcript))
	normalized := WordsToNumbers(text)

	parsed := ParsedTranscript{
		Transcript: text,
		Normalized: normalized,
		Quantity:   DefaultQuantity,
	}

	if run := digitRun.FindString(normalized); run != "" {
		qty, err := strconv.Atoi(run)
		if err != nil {
			return parsed, fmt.Errorf("%w: %q", ErrInvalidQuantity, run)
		}
		parsed.Quantity = qty
	}

	phrase := fillerWords.ReplaceAllString(normalized, " ")
	phrase = digitRun.ReplaceAllString(phrase, " ")
	parsed.Phrase = strings.Join(strings.Fields(phrase), " ")

	return parsed, nil
}
