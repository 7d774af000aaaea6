package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"telegram-chat-stats/internal/adapters/exporter"
	"telegram-chat-stats/internal/adapters/parser"
	"telegram-chat-stats/internal/domain"
)

const cliChat = `{"name": "Чат", "messages": [
	{"id":1,"type":"message","from":"Alice","from_id":"user1","text":"привет мир","date":"2024-01-01T10:00:00"},
	{"id":2,"type":"message","from":"Bob","from_id":"user2","text":"привет","date":"2024-01-02T11:00:00","reply_to_message_id":1,"reactions":[{"emoji":"👍","count":2},{"emoji":"❤","count":1}]},
	{"id":3,"type":"service","actor":"Alice","actor_id":"user1","action":"pin_message","date":"2024-01-02T12:00:00"},
	{"id":4,"type":"message","from":"Alice","from_id":"user1","text":"пока","date":"2024-02-01T10:00:00"}
]}`

func writeChat(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yml")))
	err := cmd.Execute()
	return out.String(), err
}

func decodeReport(t *testing.T, out string) domain.Report {
	t.Helper()
	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	return report
}

func TestReportCommand(t *testing.T) {
	t.Run("JSON-отчёт по файлу", func(t *testing.T) {
		out, err := runCLI(t, "", "report", writeChat(t, cliChat), "--format", "json", "--tz", "UTC")
		require.NoError(t, err)

		report := decodeReport(t, out)
		assert.Equal(t, "Чат", report.Summary.ChatName)
		assert.Equal(t, 3, report.Summary.ParticipantMessages)
		assert.Equal(t, 2, report.Summary.Authors)
		require.NotEmpty(t, report.TopAuthors)
		assert.Equal(t, "Alice", report.TopAuthors[0].DisplayName)
		require.Len(t, report.ReplyGraph.Links, 1)
		assert.Equal(t, "user2", report.ReplyGraph.Links[0].SourceID)
	})

	t.Run("Чтение из stdin, лимит и фильтр реакций", func(t *testing.T) {
		out, err := runCLI(t, cliChat, "report", "-", "--format", "json", "--limit", "1", "--emoji", "❤", "--tz", "UTC")
		require.NoError(t, err)

		report := decodeReport(t, out)
		assert.Len(t, report.TopAuthors, 1)
		require.Len(t, report.TopMessages, 1)
		assert.Equal(t, 1, report.TopMessages[0].ReactionTotal)
	})

	t.Run("Окно по датам", func(t *testing.T) {
		out, err := runCLI(t, "", "report", writeChat(t, cliChat), "--format", "json",
			"--since", "2024-01-02", "--until", "2024-02-01", "--tz", "UTC")
		require.NoError(t, err)

		report := decodeReport(t, out)
		assert.Equal(t, 1, report.Summary.ParticipantMessages)
		assert.Equal(t, "Bob", report.TopAuthors[0].DisplayName)
	})

	t.Run("Текстовый отчёт", func(t *testing.T) {
		out, err := runCLI(t, "", "report", writeChat(t, cliChat))
		require.NoError(t, err)
		assert.Contains(t, out, "Статистика чата: Чат")
		assert.Contains(t, out, "Alice")
	})

	t.Run("XLSX в файл", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "stats.xlsx")
		_, err := runCLI(t, "", "report", writeChat(t, cliChat), "--format", "xlsx", "--out", target)
		require.NoError(t, err)

		f, err := excelize.OpenFile(target)
		require.NoError(t, err)
		defer f.Close()
		assert.Contains(t, f.GetSheetList(), exporter.SheetTopAuthors)
	})

	t.Run("Некорректный JSON", func(t *testing.T) {
		_, err := runCLI(t, "", "report", writeChat(t, "not json"))
		require.ErrorIs(t, err, parser.ErrNoData)
		assert.Equal(t, "no data loaded", userMessage(err))
	})

	t.Run("Ошибки аргументов", func(t *testing.T) {
		_, err := runCLI(t, "", "report", writeChat(t, cliChat), "--format", "pdf")
		assert.Error(t, err)

		_, err = runCLI(t, "", "report", writeChat(t, cliChat), "--since", "2024-02-01", "--until", "2024-01-01")
		assert.Error(t, err)

		_, err = runCLI(t, "", "report", filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)

		_, err = runCLI(t, "", "report")
		assert.Error(t, err)
	})
}
