package exporter

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column описывает колонку текстовой таблицы. Ширина задаётся в колонках терминала.
type column struct {
	title string
	width int
	right bool
}

// table — простая текстовая таблица с переносом длинных значений по словам.
type table struct {
	cols []column
	rows [][]string
}

func newTable(cols ...column) *table {
	return &table{cols: cols}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// render пишет таблицу в w. Ошибки записи возвращаются первой встреченной.
func (t *table) render(w io.Writer) error {
	var sb strings.Builder

	header := make([]string, len(t.cols))
	for i, c := range t.cols {
		header[i] = c.title
	}
	t.writeLine(&sb, header)

	sb.WriteString("|")
	for _, c := range t.cols {
		sb.WriteString(strings.Repeat("-", c.width+2))
		sb.WriteString("|")
	}
	sb.WriteString("\n")

	for _, row := range t.rows {
		wrapped := make([][]string, len(t.cols))
		maxLines := 1
		for i, c := range t.cols {
			cell := ""
			if i < len(row) {
				cell = cleanCell(row[i])
			}
			wrapped[i] = wrapString(cell, c.width)
			if len(wrapped[i]) > maxLines {
				maxLines = len(wrapped[i])
			}
		}
		for line := 0; line < maxLines; line++ {
			parts := make([]string, len(t.cols))
			for i := range t.cols {
				if line < len(wrapped[i]) {
					parts[i] = wrapped[i][line]
				}
			}
			t.writeLine(&sb, parts)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *table) writeLine(sb *strings.Builder, parts []string) {
	for i, c := range t.cols {
		part := runewidth.Truncate(parts[i], c.width, "")
		pad := generatePadding(part, c.width)
		sb.WriteString("| ")
		if c.right {
			sb.WriteString(pad)
			sb.WriteString(part)
		} else {
			sb.WriteString(part)
			sb.WriteString(pad)
		}
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")
}

// cleanCell убирает переносы строк и некорректный UTF-8.
func cleanCell(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// generatePadding вычисляет отступ до ширины колонки с учётом широких символов.
func generatePadding(s string, colWidth int) string {
	paddingNeeded := colWidth - runewidth.StringWidth(s)
	if paddingNeeded > 0 {
		return strings.Repeat(" ", paddingNeeded)
	}
	return ""
}

// wrapString разбивает строку на строки не шире width, предпочитая границы слов.
// Слово длиннее width разрывается посередине.
func wrapString(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var currentLine strings.Builder
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)

		if wordWidth > width {
			if currentLine.Len() > 0 {
				lines = append(lines, currentLine.String())
				currentLine.Reset()
			}
			lines = append(lines, breakWord(word, width)...)
			continue
		}

		lineLen := runewidth.StringWidth(currentLine.String())
		if lineLen > 0 && lineLen+1+wordWidth > width {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
		}

		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}

func breakWord(word string, width int) []string {
	var lines []string
	runes := []rune(word)
	for len(runes) > 0 {
		i := 0
		currentWidth := 0
		for i < len(runes) {
			rw := runewidth.RuneWidth(runes[i])
			if currentWidth+rw > width {
				break
			}
			currentWidth += rw
			i++
		}
		if i == 0 {
			// Символ шире колонки: выводим его отдельно, иначе цикл не продвинется.
			i = 1
		}
		lines = append(lines, string(runes[:i]))
		runes = runes[i:]
	}
	return lines
}
