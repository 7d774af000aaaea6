package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal(t *testing.T) {
	t.Run("Файл не является терминалом", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)
		defer f.Close()

		tm := NewTerminal(f)
		assert.False(t, tm.IsInteractive())
		assert.Equal(t, DefaultWidth, tm.Width())
	})

	t.Run("nil Terminal", func(t *testing.T) {
		var tm *Terminal
		assert.False(t, tm.IsInteractive())
		assert.Equal(t, DefaultWidth, tm.Width())
	})
}
