package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Nordbygg AS", CleanString("  Nordbygg AS \t"))
	assert.Equal(t, "", CleanString("   "))
	assert.Equal(t, "", CleanString("NaN"))
}

func TestCleanFloat(t *testing.T) {
	assert.Equal(t, 1200000.0, CleanFloat("1200000"))
	assert.Equal(t, 1200.5, CleanFloat("1200,5"))
	assert.Equal(t, 0.0, CleanFloat(""))
	assert.Equal(t, 0.0, CleanFloat("ikke et tall"))
	assert.Equal(t, 0.0, CleanFloat("NaN"))
}

func TestCleanDate(t *testing.T) {
	t.Run("iso layout", func(t *testing.T) {
		got := CleanDate("2024-03-01")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("norwegian layout", func(t *testing.T) {
		got := CleanDate("01.03.2024")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("timestamp layout", func(t *testing.T) {
		got := CleanDate("2024-03-01 13:45:00")
		require.NotNil(t, got)
		assert.Equal(t, 13, got.Hour())
	})

	t.Run("empty and malformed", func(t *testing.T) {
		assert.Nil(t, CleanDate(""))
		assert.Nil(t, CleanDate("snart"))
		assert.Nil(t, CleanDate("2024-13-45"))
	})
}

func TestCleanBool(t *testing.T) {
	assert.True(t, CleanBool("true"))
	assert.True(t, CleanBool("1"))
	assert.True(t, CleanBool("Ja"))
	assert.True(t, CleanBool("x"))
	assert.False(t, CleanBool(""))
	assert.False(t, CleanBool("nei"))
	assert.False(t, CleanBool("0"))
}

func TestCleanOrgNumber(t *testing.T) {
	assert.Equal(t, "977195500", CleanOrgNumber("977195500"))
	// Spreadsheet tools export numbers as floats.
	assert.Equal(t, "977195500", CleanOrgNumber("977195500.0"))
	assert.Equal(t, "977195500", CleanOrgNumber("977 195 500"))
	assert.Equal(t, "", CleanOrgNumber(""))
	assert.Equal(t, "", CleanOrgNumber("ukjent"))
}

func TestCleanPostalCode(t *testing.T) {
	assert.Equal(t, "0661", CleanPostalCode("661"))
	assert.Equal(t, "0661", CleanPostalCode("661.0"))
	assert.Equal(t, "1407", CleanPostalCode("1407"))
	assert.Equal(t, "", CleanPostalCode(""))
	assert.Equal(t, "", CleanPostalCode("Oslo"))
}

func TestCleanCreditLimit(t *testing.T) {
	got := CleanCreditLimit("500000")
	require.NotNil(t, got)
	assert.Equal(t, 500000.0, *got)

	assert.Nil(t, CleanCreditLimit(""))
	assert.Nil(t, CleanCreditLimit("NaN"))
	assert.Nil(t, CleanCreditLimit("ubegrenset"))
}
