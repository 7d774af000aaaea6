package source

import (
	"golang.org/x/xerrors"

	"telegram-chat-stats/internal/ports"
)

// MemorySource реализует интерфейс DataSource для чтения данных из памяти.
// Используется сервером: загруженная выгрузка не сохраняется на диск.
type MemorySource struct {
	data []byte
}

// NewMemorySource создает новый экземпляр MemorySource.
func NewMemorySource(data []byte) ports.DataSource {
	return &MemorySource{data: data}
}

// Fetch возвращает копию данных из памяти.
func (s *MemorySource) Fetch() ([]byte, error) {
	if s.data == nil {
		return nil, xerrors.New("data not set")
	}

	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)

	return dataCopy, nil
}
