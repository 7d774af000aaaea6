package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"telegram-chat-stats/internal/adapters/exporter"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/pkg/term"
	"telegram-chat-stats/internal/ports"
)

// Форматы вывода отчёта.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

var errXLSXToTerminal = errors.New("xlsx нельзя выводить в терминал, укажите --out")

type outputFlags struct {
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", FormatText, "Формат вывода: text, json или xlsx")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Файл для записи отчёта (по умолчанию stdout)")
}

func (o *outputFlags) validate() error {
	switch o.format {
	case FormatText, FormatJSON, FormatXLSX:
		return nil
	}
	return fmt.Errorf("неизвестный формат %q", o.format)
}

// write выводит отчёт в выбранном формате в файл --out или в stdout команды.
func (o *outputFlags) write(cmd *cobra.Command, report *domain.Report) (err error) {
	out := cmd.OutOrStdout()
	if o.out != "" {
		f, cerr := os.Create(o.out)
		if cerr != nil {
			return fmt.Errorf("failed to create %s: %w", o.out, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	exp, err := o.exporter(out)
	if err != nil {
		return err
	}
	return exp.Export(report)
}

func (o *outputFlags) exporter(out io.Writer) (ports.Exporter, error) {
	tty := terminalFor(out)

	switch o.format {
	case FormatJSON:
		return exporter.NewJSONExporter(out, true), nil
	case FormatXLSX:
		if tty.IsInteractive() {
			return nil, errXLSXToTerminal
		}
		return exporter.NewExcelExporter(out), nil
	default:
		return exporter.NewConsoleExporter(out,
			exporter.WithWidth(tty.Width()),
			exporter.WithStyle(tty.IsInteractive()),
		), nil
	}
}

// terminalFor возвращает nil, если out не файл: такой вывод считается неинтерактивным.
func terminalFor(out io.Writer) *term.Terminal {
	if f, ok := out.(*os.File); ok {
		return term.NewTerminal(f)
	}
	return nil
}
