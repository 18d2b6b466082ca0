package faq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid dataset preserves order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faq.json")
		data := `[
			{"question": "How do I register?", "answer": "Through the portal."},
			{"question": "Where are past papers?", "answer": "In the library."}
		]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		entries, err := Load(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "How do I register?", entries[0].Question)
		assert.Equal(t, "In the library.", entries[1].Answer)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("malformed content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faq.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faq.json")
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

		entries, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
