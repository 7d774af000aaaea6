package exporter

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"telegram-chat-stats/internal/core/stats"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// Имена листов книги. Excel ограничивает имя листа 31 символом.
const (
	SheetSummary          = "Сводка"
	SheetTopAuthors       = "Авторы"
	SheetTopMessages      = "Сообщения"
	SheetAuthorsReactions = "Авторы по реакциям"
	SheetEmoji            = "Реакции"
	SheetDaily            = "По дням"
	SheetTopDays          = "Активные дни"
	SheetReactionsDaily   = "Реакции по дням"
	SheetWeekly           = "По неделям"
	SheetHeatmap          = "Тепловая карта"
	SheetWords            = "Слова"
	SheetLongest          = "Длинные сообщения"
	SheetMedia            = "Медиа"
	SheetActiveAuthors    = "Активные авторы"
	SheetNewAuthors       = "Новые авторы"
	SheetStable           = "Стабильные авторы"
	SheetGraphNodes       = "Граф узлы"
	SheetGraphLinks       = "Граф связи"
)

// ExcelExporter реализует интерфейс Exporter и пишет отчёт в книгу XLSX, по листу на агрегат.
type ExcelExporter struct {
	out io.Writer
}

// NewExcelExporter создает новый экземпляр ExcelExporter.
func NewExcelExporter(out io.Writer) ports.Exporter {
	return &ExcelExporter{out: out}
}

// Export строит книгу и записывает её в out.
func (e *ExcelExporter) Export(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	f, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(e.out); err != nil {
		return fmt.Errorf("failed to write excel: %w", err)
	}
	return nil
}

// BuildWorkbook строит книгу Excel по отчёту. Вызывающий должен закрыть книгу.
func BuildWorkbook(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	wb := &workbook{f: f}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	wb.summary(report.Summary)

	authorRows := func(rows []domain.AuthorRow) [][]any {
		out := make([][]any, 0, len(rows))
		for _, r := range rows {
			out = append(out, []any{r.Rank, r.AuthorID, r.DisplayName, r.Count})
		}
		return out
	}
	bucketRows := func(rows []domain.BucketRow) [][]any {
		out := make([][]any, 0, len(rows))
		for _, r := range rows {
			out = append(out, []any{r.Key, r.Count})
		}
		return out
	}

	wb.sheet(SheetTopAuthors, []string{"Место", "ID", "Автор", "Сообщений"}, authorRows(report.TopAuthors))

	messages := make([][]any, 0, len(report.TopMessages))
	for _, m := range report.TopMessages {
		messages = append(messages, []any{m.Rank, m.MessageID, m.AuthorDisplayName, m.Text, m.ReactionTotal})
	}
	wb.sheet(SheetTopMessages, []string{"Место", "ID сообщения", "Автор", "Текст", "Реакций"}, messages)

	wb.sheet(SheetAuthorsReactions, []string{"Место", "ID", "Автор", "Реакций"}, authorRows(report.TopAuthorsByReactions))

	emoji := make([][]any, 0, len(report.TopEmoji))
	for _, r := range report.TopEmoji {
		emoji = append(emoji, []any{r.Rank, r.Label, r.Count})
	}
	wb.sheet(SheetEmoji, []string{"Место", "Реакция", "Количество"}, emoji)

	wb.sheet(SheetDaily, []string{"День", "Сообщений"}, bucketRows(report.Daily))
	wb.sheet(SheetTopDays, []string{"День", "Сообщений"}, bucketRows(report.TopDays))
	wb.sheet(SheetReactionsDaily, []string{"День", "Реакций"}, bucketRows(report.ReactionsDaily))
	wb.sheet(SheetWeekly, []string{"Неделя", "Начало недели", "Сообщений"}, weekRows(report.Weekly))

	heat := make([][]any, 0, 7)
	var grid [7][24]int
	for _, c := range report.Heatmap {
		if c.Weekday >= 0 && c.Weekday < 7 && c.Hour >= 0 && c.Hour < 24 {
			grid[c.Weekday][c.Hour] = c.Count
		}
	}
	for wd, hours := range grid {
		row := []any{weekdayNames[wd]}
		for _, n := range hours {
			row = append(row, n)
		}
		heat = append(heat, row)
	}
	heatHeader := []string{"День"}
	for h := 0; h < 24; h++ {
		heatHeader = append(heatHeader, fmt.Sprintf("%02d", h))
	}
	wb.sheet(SheetHeatmap, heatHeader, heat)

	words := make([][]any, 0, len(report.Words))
	for _, r := range report.Words {
		words = append(words, []any{r.Rank, r.Word, r.Count})
	}
	wb.sheet(SheetWords, []string{"Место", "Слово", "Количество"}, words)

	longest := make([][]any, 0, len(report.LongestMessages))
	for _, m := range report.LongestMessages {
		longest = append(longest, []any{m.Rank, m.MessageID, m.AuthorDisplayName, m.Text, m.Length})
	}
	wb.sheet(SheetLongest, []string{"Место", "ID сообщения", "Автор", "Текст", "Символов"}, longest)

	media := make([][]any, 0, len(report.Media))
	for _, r := range report.Media {
		media = append(media, []any{r.Rank, r.Kind, r.Count})
	}
	wb.sheet(SheetMedia, []string{"Место", "Тип", "Количество"}, media)

	wb.sheet(SheetActiveAuthors, []string{"Неделя", "Начало недели", "Авторов"}, weekRows(report.WeeklyActiveAuthors))
	wb.sheet(SheetNewAuthors, []string{"Неделя", "Начало недели", "Новых авторов"}, weekRows(report.WeeklyNewAuthors))

	stable := make([][]any, 0, len(report.StableAuthors))
	for _, r := range report.StableAuthors {
		stable = append(stable, []any{r.Rank, r.AuthorID, r.DisplayName, r.Weeks})
	}
	wb.sheet(SheetStable, []string{"Место", "ID", "Автор", "Активных недель"}, stable)

	nodes := make([][]any, 0, len(report.ReplyGraph.Nodes))
	for _, n := range report.ReplyGraph.Nodes {
		nodes = append(nodes, []any{n.ID, n.DisplayName, n.Messages, n.Degree})
	}
	wb.sheet(SheetGraphNodes, []string{"ID", "Автор", "Сообщений", "Связей"}, nodes)

	links := make([][]any, 0, len(report.ReplyGraph.Links))
	for _, l := range report.ReplyGraph.Links {
		links = append(links, []any{l.SourceID, l.TargetID, l.Weight})
	}
	wb.sheet(SheetGraphLinks, []string{"Источник", "Адресат", "Вес"}, links)

	if wb.err != nil {
		f.Close()
		return nil, wb.err
	}
	return f, nil
}

func weekRows(rows []domain.BucketRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		start := ""
		if t, ok := stats.WeekStart(r.Key, time.UTC); ok {
			start = t.Format("2006-01-02")
		}
		out = append(out, []any{r.Key, start, r.Count})
	}
	return out
}

// workbook запоминает первую ошибку excelize.
type workbook struct {
	f   *excelize.File
	err error
}

func (wb *workbook) summary(s domain.Summary) {
	formatTime := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}
	rows := [][]any{
		{"Чат", s.ChatName},
		{"Записей в выгрузке", s.RawRecords},
		{"Сообщений", s.ParsedMessages},
		{"Сообщений участников", s.ParticipantMessages},
		{"Авторов", s.Authors},
		{"Реакций", s.TotalReactions},
		{"Без корректной даты", s.InvalidTimestamps},
		{"Первое сообщение", formatTime(s.FirstMessageAt)},
		{"Последнее сообщение", formatTime(s.LastMessageAt)},
	}
	wb.fill(SheetSummary, []string{"Показатель", "Значение"}, rows)
}

func (wb *workbook) sheet(name string, headers []string, rows [][]any) {
	if wb.err != nil {
		return
	}
	if _, err := wb.f.NewSheet(name); err != nil {
		wb.err = fmt.Errorf("failed to create sheet %q: %w", name, err)
		return
	}
	wb.fill(name, headers, rows)
}

func (wb *workbook) fill(name string, headers []string, rows [][]any) {
	for i, h := range headers {
		wb.set(name, i+1, 1, h)
	}
	for r, row := range rows {
		for c, v := range row {
			wb.set(name, c+1, r+2, v)
		}
	}
}

func (wb *workbook) set(sheet string, col, row int, value any) {
	if wb.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		wb.err = err
		return
	}
	if err := wb.f.SetCellValue(sheet, cell, value); err != nil {
		wb.err = fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
	}
}
