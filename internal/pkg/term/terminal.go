// Package term определяет свойства терминала, в который пишет CLI.
package term

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth используется, когда вывод идёт не в терминал.
const DefaultWidth = 100

// Terminal описывает поток вывода CLI.
type Terminal struct {
	fd    int
	isTTY bool
}

// NewTerminal создает Terminal для файла вывода. nil означает os.Stdout.
func NewTerminal(f *os.File) *Terminal {
	if f == nil {
		f = os.Stdout
	}
	fd := int(f.Fd())
	return &Terminal{fd: fd, isTTY: term.IsTerminal(fd)}
}

// IsInteractive сообщает, подключён ли вывод к терминалу.
func (t *Terminal) IsInteractive() bool {
	return t != nil && t.isTTY
}

// Width возвращает ширину терминала в колонках или DefaultWidth.
func (t *Terminal) Width() int {
	if !t.IsInteractive() {
		return DefaultWidth
	}
	w, _, err := termSize(t.fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
