package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockFormatBrazil(t *testing.T) {
	c, err := NewClock("pt-BR", "America/Sao_Paulo")
	require.NoError(t, err)

	ts := time.Date(2024, 6, 1, 13, 5, 0, 0, time.UTC)
	assert.Equal(t, "10:05", c.Format(&ts))
	assert.Equal(t, "pt-BR", c.Locale())
}

func TestClockFormatEnglish(t *testing.T) {
	c, err := NewClock("en-US", "UTC")
	require.NoError(t, err)

	ts := time.Date(2024, 6, 1, 13, 5, 0, 0, time.UTC)
	assert.Equal(t, "01:05 PM", c.Format(&ts))
}

func TestClockUnsupportedLocaleFallsBack(t *testing.T) {
	c, err := NewClock("de-DE", "UTC")
	require.NoError(t, err)

	ts := time.Date(2024, 6, 1, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, "07:30", c.Format(&ts))
}

func TestClockFormatNil(t *testing.T) {
	c := MustClock("pt-BR", "UTC")
	assert.Equal(t, "", c.Format(nil))
}

func TestNewClockErrors(t *testing.T) {
	_, err := NewClock("not a locale!", "UTC")
	assert.Error(t, err)

	_, err = NewClock("pt-BR", "Mars/Olympus")
	assert.Error(t, err)
}

func TestClockParse(t *testing.T) {
	c := MustClock("pt-BR", "UTC")
	ref := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)

	got, err := c.Parse("08:15", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 15, 0, 0, time.UTC), got)

	_, err = c.Parse("8h15", ref)
	assert.Error(t, err)
}

func TestOrFallback(t *testing.T) {
	assert.Equal(t, "Não informado", OrFallback(""))
	assert.Equal(t, "Milho", OrFallback("Milho"))
}
