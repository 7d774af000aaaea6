package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySource(t *testing.T) {
	t.Run("Fetch возвращает загруженную выгрузку", func(t *testing.T) {
		upload := []byte(`{"name":"chat","messages":[]}`)

		got, err := NewMemorySource(upload).Fetch()
		require.NoError(t, err)
		assert.Equal(t, upload, got)
	})

	t.Run("Пустая загрузка не ошибка", func(t *testing.T) {
		got, err := NewMemorySource([]byte{}).Fetch()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("nil означает отсутствие данных", func(t *testing.T) {
		got, err := NewMemorySource(nil).Fetch()
		assert.Nil(t, got)
		assert.EqualError(t, err, "data not set")
	})

	t.Run("Изменение результата не затрагивает источник", func(t *testing.T) {
		upload := []byte("{}")
		src := NewMemorySource(upload)

		first, err := src.Fetch()
		require.NoError(t, err)
		first[0] = 'X'

		second, err := src.Fetch()
		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), second)
		assert.Equal(t, []byte("{}"), upload)
	})
}
