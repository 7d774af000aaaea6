package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-chat-stats/internal/domain"
)

func TestEndToEndWithRealBinary(t *testing.T) {
	if testing.Short() {
		t.Skip("сквозной тест собирает бинарный файл")
	}

	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "result.json")
	require.NoError(t, os.WriteFile(testFile, []byte(chatExport), 0644))

	// Собираем бинарный файл
	binary := filepath.Join(tempDir, "tgstats")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/tgstats")
	buildCmd.Dir = "../.."
	if err := buildCmd.Run(); err != nil {
		t.Skipf("Пропускаем сквозной тест: не удалось собрать бинарный файл: %v", err)
	}

	t.Run("JSON-отчёт", func(t *testing.T) {
		var stdout bytes.Buffer
		cmd := exec.Command(binary, "report", testFile, "--format", "json", "--tz", "UTC",
			"--config", filepath.Join(tempDir, "missing.yml"))
		cmd.Stdout = &stdout
		require.NoError(t, cmd.Run())

		var report domain.Report
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		assert.Equal(t, "Test Chat", report.Summary.ChatName)
		assert.Equal(t, 6, report.Summary.ParticipantMessages)
	})

	t.Run("Некорректный JSON завершает процесс с ошибкой", func(t *testing.T) {
		broken := filepath.Join(tempDir, "broken.json")
		require.NoError(t, os.WriteFile(broken, []byte("not json"), 0644))

		var stderr bytes.Buffer
		cmd := exec.Command(binary, "report", broken, "--config", filepath.Join(tempDir, "missing.yml"))
		cmd.Stderr = &stderr
		err := cmd.Run()

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitErr.ExitCode())
		assert.Contains(t, stderr.String(), "no data loaded")
	})
}
