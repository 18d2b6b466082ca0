package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	base := Citation{
		Author:  "Curie, M.",
		Title:   "Radioactive Substances",
		Journal: "Annales de Chimie",
		Year:    "1903",
	}

	t.Run("APA without DOI", func(t *testing.T) {
		citation, err := Format(StyleAPA, base)
		require.NoError(t, err)
		assert.Equal(t, "Curie, M. (1903). Radioactive Substances. Annales de Chimie.", citation)
	})

	t.Run("APA with DOI", func(t *testing.T) {
		c := base
		c.DOI = "10.1000/xyz123"
		citation, err := Format(StyleAPA, c)
		require.NoError(t, err)
		assert.Equal(t, "Curie, M. (1903). Radioactive Substances. Annales de Chimie. https://doi.org/10.1000/xyz123", citation)
	})

	t.Run("MLA", func(t *testing.T) {
		citation, err := Format(StyleMLA, base)
		require.NoError(t, err)
		assert.Equal(t, `Curie, M.. "Radioactive Substances." Annales de Chimie, 1903.`, citation)
	})

	t.Run("IEEE", func(t *testing.T) {
		citation, err := Format(StyleIEEE, base)
		require.NoError(t, err)
		assert.Equal(t, `Curie, M., "Radioactive Substances," Annales de Chimie, 1903.`, citation)
	})

	t.Run("unknown style", func(t *testing.T) {
		_, err := Format(CitationStyle("Chicago"), base)
		assert.Error(t, err)
	})
}
