package source

import (
	"io"
	"os"

	"golang.org/x/xerrors"

	"telegram-chat-stats/internal/ports"
)

// StdinPath — путь, означающий чтение выгрузки из стандартного ввода.
const StdinPath = "-"

// CliSource реализует интерфейс DataSource для чтения данных из файла,
// указанного в командной строке, или из стандартного ввода.
type CliSource struct {
	filePath string
	stdin    io.Reader
}

// NewCliSource создает новый экземпляр CliSource.
func NewCliSource(filePath string) ports.DataSource {
	return &CliSource{filePath: filePath, stdin: os.Stdin}
}

// NewReaderSource создает CliSource, читающий из произвольного потока вместо stdin.
func NewReaderSource(r io.Reader) ports.DataSource {
	return &CliSource{filePath: StdinPath, stdin: r}
}

// Fetch читает файл по указанному пути и возвращает его содержимое.
func (s *CliSource) Fetch() ([]byte, error) {
	switch s.filePath {
	case "":
		return nil, xerrors.New("не указан путь к файлу")
	case StdinPath:
		if s.stdin == nil {
			return nil, xerrors.New("стандартный ввод недоступен")
		}
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, xerrors.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, xerrors.Errorf("failed to read file %s: %w", s.filePath, err)
	}

	return data, nil
}
