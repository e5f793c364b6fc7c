package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2026-01-15"))
	assert.False(t, IsValidDate("15/01/2026"))
	assert.False(t, IsValidDate("2026-13-01"))
	assert.False(t, IsValidDate(""))
}

func TestPreviousDate(t *testing.T) {
	t.Run("Dia anterior dentro do mês", func(t *testing.T) {
		previous, err := PreviousDate("2026-01-15")
		require.NoError(t, err)
		assert.Equal(t, "2026-01-14", previous)
	})

	t.Run("Virada de mês e de ano", func(t *testing.T) {
		previous, err := PreviousDate("2026-01-01")
		require.NoError(t, err)
		assert.Equal(t, "2025-12-31", previous)
	})

	t.Run("Ano bissexto", func(t *testing.T) {
		previous, err := PreviousDate("2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", previous)
	})

	t.Run("Data inválida", func(t *testing.T) {
		_, err := PreviousDate("ontem")
		assert.Error(t, err)
	})
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 8.0, RoundWithTwoDecimalPlace(8.0000001))
	assert.Equal(t, 0.94, RoundWithTwoDecimalPlace(7.5/8))
	assert.Equal(t, 2.67, RoundWithTwoDecimalPlace(2.666666))
}

func TestDatedID(t *testing.T) {
	id := DatedID("2026-01-15")
	assert.Len(t, id, len("2026-01-15")+1+6)
	assert.Equal(t, "2026-01-15-", id[:11])
}

func TestMaterialKey(t *testing.T) {
	assert.Equal(t, "7", MaterialKey(7))
}
