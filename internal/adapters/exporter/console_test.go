package exporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"telegram-chat-stats/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Summary: domain.Summary{
			ChatName:            "Тестовый чат",
			RawRecords:          1500,
			ParsedMessages:      1400,
			ParticipantMessages: 1234,
			Authors:             2,
			TotalReactions:      10,
			FirstMessageAt:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			LastMessageAt:       time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC),
		},
		TopAuthors: []domain.AuthorRow{
			{Rank: 1, AuthorID: "user1", DisplayName: "Alice", Count: 1000},
			{Rank: 2, AuthorID: "user2", DisplayName: "Бобби", Count: 234},
		},
		TopMessages: []domain.MessageRow{
			{Rank: 1, MessageID: 7, AuthorID: "user1", AuthorDisplayName: "Alice", Text: "очень\nдлинный текст", ReactionTotal: 10},
		},
		TopAuthorsByReactions: []domain.AuthorRow{{Rank: 1, AuthorID: "user1", DisplayName: "Alice", Count: 10}},
		TopEmoji:              []domain.EmojiRow{{Rank: 1, Label: "👍", Count: 10}},
		ReactionLabels:        []string{"👍"},
		Daily:                 []domain.BucketRow{{Key: "2024-01-01", Count: 1000}, {Key: "2024-01-09", Count: 234}},
		TopDays:               []domain.BucketRow{{Key: "2024-01-01", Count: 1000}},
		Weekly:                []domain.BucketRow{{Key: "2024-W01", Count: 1000}, {Key: "2024-W02", Count: 234}},
		Heatmap:               []domain.HeatmapCell{{Weekday: 0, Hour: 10, Count: 1000}, {Weekday: 1, Hour: 10, Count: 234}},
		Words:                 []domain.WordRow{{Rank: 1, Word: "привет", Count: 50}},
		Media:                 []domain.MediaRow{{Rank: 1, Kind: "photo", Count: 3}},
		StableAuthors:         []domain.WeeksRow{{Rank: 1, AuthorID: "user1", DisplayName: "Alice", Weeks: 2}},
		WeeklyActiveAuthors:   []domain.BucketRow{{Key: "2024-W01", Count: 1}},
		ReplyGraph: domain.Graph{
			Nodes: []domain.Node{
				{ID: "user1", DisplayName: "Alice", Messages: 1000, Degree: 3},
				{ID: "user2", DisplayName: "Бобби", Messages: 234, Degree: 3},
			},
			Links: []domain.Link{{SourceID: "user2", TargetID: "user1", Weight: 3}},
		},
	}
}

func TestConsoleExporter(t *testing.T) {
	t.Run("NewConsoleExporter создает корректный экземпляр", func(t *testing.T) {
		assert.NotNil(t, NewConsoleExporter(nil))
	})

	t.Run("Export выводит разделы отчёта", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsoleExporter(&buf, WithWidth(80)).Export(sampleReport()))
		output := buf.String()

		assert.Contains(t, output, "Статистика чата: Тестовый чат")
		assert.Contains(t, output, "1,234")
		assert.Contains(t, output, "Самые активные авторы")
		assert.Contains(t, output, "Бобби")
		assert.Contains(t, output, "Популярные реакции")
		assert.Contains(t, output, "2024-W02")
		assert.Contains(t, output, "Кто кому отвечает")
		assert.NotContains(t, output, "очень\nдлинный")
	})

	t.Run("Пустой отчёт", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsoleExporter(&buf).Export(&domain.Report{}))
		assert.Contains(t, buf.String(), "Сообщения участников не найдены.")
	})

	t.Run("nil отчёт", func(t *testing.T) {
		assert.Error(t, NewConsoleExporter(&bytes.Buffer{}).Export(nil))
	})
}

func TestTable(t *testing.T) {
	t.Run("Строки выровнены по ширине", func(t *testing.T) {
		tb := newTable(column{title: "Имя", width: 8}, column{title: "N", width: 4, right: true})
		tb.add("Алиса", "1")
		tb.add("太郎", "22")

		var buf bytes.Buffer
		require.NoError(t, tb.render(&buf))
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 4)
		for _, l := range lines {
			assert.Equal(t, runewidth.StringWidth(lines[0]), runewidth.StringWidth(l), l)
		}
	})

	t.Run("Перенос по словам", func(t *testing.T) {
		assert.Equal(t, []string{"один два", "три"}, wrapString("один два три", 8))
		assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrapString("abcdefghij", 4))
		assert.Equal(t, []string{"short"}, wrapString("short", 10))
	})

	t.Run("Отступ учитывает широкие символы", func(t *testing.T) {
		assert.Equal(t, "  ", generatePadding("太郎", 6))
		assert.Equal(t, "", generatePadding("too long", 3))
	})
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONExporter(&buf, true).Export(sampleReport()))

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleReport().TopAuthors, decoded.TopAuthors)
	assert.Equal(t, sampleReport().ReplyGraph, decoded.ReplyGraph)
	assert.Contains(t, buf.String(), "👍")

	assert.Error(t, NewJSONExporter(&buf, false).Export(nil))
}

func TestExcelExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter(&buf).Export(sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, SheetSummary)
	assert.Contains(t, sheets, SheetGraphLinks)
	assert.NotContains(t, sheets, "Sheet1")

	name, err := f.GetCellValue(SheetTopAuthors, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Бобби", name)

	start, err := f.GetCellValue(SheetWeekly, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", start)

	heat, err := f.GetCellValue(SheetHeatmap, "L2")
	require.NoError(t, err)
	assert.Equal(t, "1000", heat)
}

func TestExcelExporterDeterministic(t *testing.T) {
	summaryRows := func() [][]string {
		var buf bytes.Buffer
		require.NoError(t, NewExcelExporter(&buf).Export(sampleReport()))
		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(SheetSummary)
		require.NoError(t, err)
		return rows
	}

	first := summaryRows()
	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, first, summaryRows(), "сводка зависит только от отчёта")
}
