package exporter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

const (
	// minTextWidth — минимальная ширина колонки с текстом сообщения.
	minTextWidth = 20
	// maxGraphLinks — сколько самых тяжёлых связей графа выводить в консоль.
	maxGraphLinks = 20
	barWidth      = 30
)

var weekdayNames = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205"))

// ConsoleOption настраивает ConsoleExporter.
type ConsoleOption func(*ConsoleExporter)

// WithWidth задаёт ширину вывода в колонках терминала.
func WithWidth(width int) ConsoleOption {
	return func(e *ConsoleExporter) {
		if width > 0 {
			e.width = width
		}
	}
}

// WithStyle включает оформление заголовков (цвет, жирный шрифт).
func WithStyle(styled bool) ConsoleOption {
	return func(e *ConsoleExporter) {
		e.styled = styled
	}
}

// ConsoleExporter реализует интерфейс Exporter для вывода отчёта в консоль в виде таблиц.
type ConsoleExporter struct {
	out    io.Writer
	width  int
	styled bool
}

// NewConsoleExporter создает новый экземпляр ConsoleExporter. nil out означает os.Stdout.
func NewConsoleExporter(out io.Writer, opts ...ConsoleOption) ports.Exporter {
	if out == nil {
		out = os.Stdout
	}
	e := &ConsoleExporter{out: out, width: 100}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export выводит отчёт в консоль.
func (e *ConsoleExporter) Export(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}

	w := &errWriter{w: e.out}
	e.writeSummary(w, report.Summary)

	if report.Summary.ParticipantMessages == 0 {
		w.printf("\nСообщения участников не найдены.\n")
		return w.err
	}

	sections := []func(*errWriter, *domain.Report){
		e.writeTopAuthors,
		e.writeTopMessages,
		e.writeTopAuthorsByReactions,
		e.writeTopEmoji,
		e.writeTopDays,
		e.writeWeekly,
		e.writeHeatmap,
		e.writeWords,
		e.writeLongest,
		e.writeMedia,
		e.writeStable,
		e.writeGraph,
	}
	for _, section := range sections {
		section(w, report)
	}
	return w.err
}

func (e *ConsoleExporter) heading(w *errWriter, title string) {
	w.printf("\n")
	if e.styled {
		w.printf("%s\n", headingStyle.Render(title))
		return
	}
	w.printf("%s\n%s\n", title, strings.Repeat("=", runewidth.StringWidth(title)))
}

func (e *ConsoleExporter) writeSummary(w *errWriter, s domain.Summary) {
	title := "Статистика чата"
	if s.ChatName != "" {
		title += ": " + s.ChatName
	}
	e.heading(w, title)
	w.printf("Записей в выгрузке:      %s\n", humanize.Comma(int64(s.RawRecords)))
	w.printf("Сообщений:               %s\n", humanize.Comma(int64(s.ParsedMessages)))
	w.printf("Сообщений участников:    %s\n", humanize.Comma(int64(s.ParticipantMessages)))
	w.printf("Авторов:                 %s\n", humanize.Comma(int64(s.Authors)))
	w.printf("Реакций:                 %s\n", humanize.Comma(int64(s.TotalReactions)))
	if !s.FirstMessageAt.IsZero() {
		w.printf("Период:                  %s — %s\n",
			s.FirstMessageAt.Format("2006-01-02"), s.LastMessageAt.Format("2006-01-02"))
	}
	if s.InvalidTimestamps > 0 {
		w.printf("Без корректной даты:     %s\n", humanize.Comma(int64(s.InvalidTimestamps)))
	}
}

// textWidth возвращает ширину колонки с текстом, если остальные колонки занимают fixed.
func (e *ConsoleExporter) textWidth(fixed int) int {
	if tw := e.width - fixed; tw > minTextWidth {
		return tw
	}
	return minTextWidth
}

func (e *ConsoleExporter) authorTable(w *errWriter, title, countTitle string, rows []domain.AuthorRow) {
	e.heading(w, title)
	t := newTable(
		column{title: "#", width: 3, right: true},
		column{title: "Автор", width: 30},
		column{title: countTitle, width: 12, right: true},
	)
	for _, r := range rows {
		t.add(strconv.Itoa(r.Rank), r.DisplayName, humanize.Comma(int64(r.Count)))
	}
	w.table(t)
}

func (e *ConsoleExporter) writeTopAuthors(w *errWriter, r *domain.Report) {
	e.authorTable(w, "Самые активные авторы", "Сообщений", r.TopAuthors)
}

func (e *ConsoleExporter) writeTopAuthorsByReactions(w *errWriter, r *domain.Report) {
	if len(r.TopAuthorsByReactions) == 0 {
		return
	}
	e.authorTable(w, "Авторы по реакциям", "Реакций", r.TopAuthorsByReactions)
}

func (e *ConsoleExporter) writeTopMessages(w *errWriter, r *domain.Report) {
	if len(r.TopMessages) == 0 {
		return
	}
	e.heading(w, "Сообщения с наибольшим числом реакций")
	t := newTable(
		column{title: "#", width: 3, right: true},
		column{title: "Автор", width: 20},
		column{title: "Текст", width: e.textWidth(50)},
		column{title: "Реакций", width: 8, right: true},
	)
	for _, m := range r.TopMessages {
		t.add(strconv.Itoa(m.Rank), m.AuthorDisplayName, m.Text, humanize.Comma(int64(m.ReactionTotal)))
	}
	w.table(t)
}

func (e *ConsoleExporter) writeTopEmoji(w *errWriter, r *domain.Report) {
	if len(r.TopEmoji) == 0 {
		return
	}
	e.heading(w, "Популярные реакции")
	t := newTable(
		column{title: "#", width: 3, right: true},
		column{title: "Реакция", width: 24},
		column{title: "Количество", width: 12, right: true},
	)
	for _, row := range r.TopEmoji {
		t.add(strconv.Itoa(row.Rank), row.Label, humanize.Comma(int64(row.Count)))
	}
	w.table(t)
}

func (e *ConsoleExporter) writeTopDays(w *errWriter, r *domain.Report) {
	if len(r.TopDays) == 0 {
		return
	}
	e.heading(w, "Самые активные дни")
	e.bucketTable(w, "День", r.TopDays)
}

func (e *ConsoleExporter) writeWeekly(w *errWriter, r *domain.Report) {
	if len(r.Weekly) == 0 {
		return
	}
	e.heading(w, "Активность по неделям")
	e.bucketTable(w, "Неделя", r.Weekly)
}

func (e *ConsoleExporter) bucketTable(w *errWriter, keyTitle string, rows []domain.BucketRow) {
	peak := 0
	for _, b := range rows {
		if b.Count > peak {
			peak = b.Count
		}
	}
	t := newTable(
		column{title: keyTitle, width: 10},
		column{title: "Сообщений", width: 10, right: true},
		column{title: "", width: barWidth},
	)
	for _, b := range rows {
		t.add(b.Key, humanize.Comma(int64(b.Count)), bar(b.Count, peak, barWidth))
	}
	w.table(t)
}

func bar(n, peak, width int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	filled := n * width / peak
	if filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}

func (e *ConsoleExporter) writeHeatmap(w *errWriter, r *domain.Report) {
	if len(r.Heatmap) == 0 {
		return
	}
	var grid [7][24]int
	peak := 0
	for _, c := range r.Heatmap {
		if c.Weekday < 0 || c.Weekday > 6 || c.Hour < 0 || c.Hour > 23 {
			continue
		}
		grid[c.Weekday][c.Hour] = c.Count
		if c.Count > peak {
			peak = c.Count
		}
	}

	e.heading(w, "Активность по дням недели и часам")
	shades := []rune(" ░▒▓█")
	w.printf("    ")
	for h := 0; h < 24; h += 3 {
		w.printf("%-6d", h)
	}
	w.printf("\n")
	for wd, hours := range grid {
		w.printf("%s  ", weekdayNames[wd])
		for _, n := range hours {
			idx := 0
			if n > 0 {
				idx = 1 + n*(len(shades)-2)/peak
			}
			w.printf("%c%c", shades[idx], shades[idx])
		}
		w.printf("\n")
	}
}

func (e *ConsoleExporter) writeWords(w *errWriter, r *domain.Report) {
	if len(r.Words) == 0 {
		return
	}
	e.heading(w, "Частые слова")
	t := newTable(
		column{title: "#", width: 3, right: true},
		column{title: "Слово", width: 24},
		column{title: "Количество", width: 12, right: true},
	)
	for _, row := range r.Words {
		t.add(strconv.Itoa(row.Rank), row.Word, humanize.Comma(int64(row.Count)))
	}
	w.table(t)
}

func (e *ConsoleExporter) writeLongest(w *errWriter, r *domain.Report) {
	if len(r.LongestMessages) == 0 {
		return
	}
	e.heading(w, "Самые длинные сообщения")
	t := newTable(
		column{title: "#", width: 3, right: true},
		column{title: "Автор", width: 20},
		column{title: "Текст", width: e.textWidth(50)},
		column{title: "Символов", width: 8, right: true},
	)
	for _, m := range r.LongestMessages {
		t.add(strconv.Itoa(m.Rank), m.AuthorDisplayName, runewidth.Truncate(cleanCell(m.Text), e.textWidth(50)*3, "…"),
			humanize.Comma(int64(m.Length)))
	}
	w.table(t)
}

func (e *ConsoleExporter) writeMedia(w *errWriter, r *domain.Report) {
	if len(r.Media) == 0 {
		return
	}
	e.heading(w, "Медиа")
	t := newTable(
		column{title: "Тип", width: 14},
		column{title: "Количество", width: 12, right: true},
	)
	for _, row := range r.Media {
		t.add(row.Kind, humanize.Comma(int64(row.Count)))
	}
	w.table(t)
}

func (e *ConsoleExporter) writeStable(w *errWriter, r *domain.Report) {
	if len(r.StableAuthors) == 0 {
		return
	}
	e.heading(w, "Стабильные авторы (активных недель)")
	t := newTable(
		column{title: "#", width: 3, right: true},
		column{title: "Автор", width: 30},
		column{title: "Недель", width: 8, right: true},
	)
	for _, row := range r.StableAuthors {
		t.add(strconv.Itoa(row.Rank), row.DisplayName, strconv.Itoa(row.Weeks))
	}
	w.table(t)
}

func (e *ConsoleExporter) writeGraph(w *errWriter, r *domain.Report) {
	if len(r.ReplyGraph.Links) == 0 {
		return
	}
	names := make(map[string]string, len(r.ReplyGraph.Nodes))
	for _, n := range r.ReplyGraph.Nodes {
		names[n.ID] = n.DisplayName
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	links := make([]domain.Link, len(r.ReplyGraph.Links))
	copy(links, r.ReplyGraph.Links)
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Weight > links[j].Weight
	})
	if len(links) > maxGraphLinks {
		links = links[:maxGraphLinks]
	}

	e.heading(w, "Кто кому отвечает")
	t := newTable(
		column{title: "Автор", width: 24},
		column{title: "Собеседник", width: 24},
		column{title: "Ответов", width: 8, right: true},
	)
	for _, l := range links {
		t.add(name(l.SourceID), name(l.TargetID), humanize.Comma(int64(l.Weight)))
	}
	w.table(t)
}

// errWriter запоминает первую ошибку записи, чтобы не проверять её после каждой строки.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) table(t *table) {
	if ew.err != nil {
		return
	}
	ew.err = t.render(ew.w)
}
