package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail_voice_backend/internal/models"
)

func catalog(names ...string) []models.Product {
	products := make([]models.Product, len(names))
	for i, n := range names {
		products[i] = models.Product{ID: n, Name: n}
	}
	return products
}

func TestBest_SubstringMatch(t *testing.T) {
	m := New(catalog("Rice 5kg", "Sugar 1kg", "Toor Dal"))

	p, err := m.Best("sugar")
	require.NoError(t, err)
	assert.Equal(t, "Sugar 1kg", p.Name)
}

func TestBest_NoMatch(t *testing.T) {
	m := New(catalog("Rice 5kg", "Sugar 1kg", "Toor Dal"))

	_, err := m.Best("xyzzy")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestBest_EmptyPhrase(t *testing.T) {
	m := New(catalog("Sugar 1kg"))

	_, err := m.Best("   ")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestBest_ToleratesTypos(t *testing.T) {
	m := New(catalog("Rice 5kg", "Sugar 1kg"))

	p, err := m.Best("suger")
	require.NoError(t, err)
	assert.Equal(t, "Sugar 1kg", p.Name)
}

func TestSearch_RanksEarlierAlignmentFirst(t *testing.T) {
	m := New(catalog("Brown Sugar 500g", "Sugar 1kg"))

	results := m.Search("sugar")
	require.Len(t, results, 2)
	assert.Equal(t, "Sugar 1kg", results[0].Product.Name)
	assert.Equal(t, 0.0, results[0].Score)
	assert.InDelta(t, 0.06, results[1].Score, 1e-9)
}

func TestSearch_ShorterNameBreaksTies(t *testing.T) {
	m := New(catalog("Salt Iodised", "Salt"))

	results := m.Search("salt")
	require.Len(t, results, 2)
	assert.Equal(t, "Salt", results[0].Product.Name)
}

func TestSearch_ThresholdIsConfigurable(t *testing.T) {
	strict := New(catalog("Sugar 1kg"), WithThreshold(0.1))
	assert.Empty(t, strict.Search("suger"))

	loose := New(catalog("Sugar 1kg"), WithThreshold(0.25))
	assert.Len(t, loose.Search("suger"), 1)
}
