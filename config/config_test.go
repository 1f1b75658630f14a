package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/gridcalc/value"
)

const legacy = `initialTableRows:4
initialTableCols:5
maxTableRows:20
maxTableCols:10
autoFit:false

visibleCellSymbols:8
initialAlignment:center
clearConsoleAfterCommand:true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadLegacy(t *testing.T) {
	file := writeFile(t, "table.cfg", legacy)
	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.InitialRows)
	assert.Equal(t, 5, cfg.InitialCols)
	assert.Equal(t, 20, cfg.MaxRows)
	assert.Equal(t, 10, cfg.MaxCols)
	assert.False(t, cfg.AutoFit)
	assert.Equal(t, 8, cfg.VisibleCellSymbols)
	assert.Equal(t, AlignCenter, cfg.Alignment)
	assert.True(t, cfg.ClearConsole)
	assert.Equal(t, 256, cfg.MaxEvalDepth)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, file, cfg.File)
}

func TestLoadYAML(t *testing.T) {
	content := `initialTableRows: 2
initialTableCols: 2
maxTableRows: 50
maxTableCols: 26
autoFit: true
visibleCellSymbols: 12
initialAlignment: right
clearConsoleAfterCommand: false
logLevel: debug
maxEvalDepth: 32
`
	cfg, err := Load(writeFile(t, "table.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.InitialRows)
	assert.Equal(t, 50, cfg.MaxRows)
	assert.True(t, cfg.AutoFit)
	assert.Equal(t, AlignRight, cfg.Alignment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 32, cfg.MaxEvalDepth)
}

func TestLoadJSON(t *testing.T) {
	content := `{
	"initialTableRows": 1,
	"initialTableCols": 1,
	"maxTableRows": 5,
	"maxTableCols": 5,
	"autoFit": false,
	"visibleCellSymbols": 3,
	"initialAlignment": "left",
	"clearConsoleAfterCommand": false
}`
	cfg, err := Load(writeFile(t, "table.json", content))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxCols)
	assert.Equal(t, 3, cfg.VisibleCellSymbols)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GRIDCALC_VISIBLECELLSYMBOLS", "4")
	cfg, err := Load(writeFile(t, "table.cfg", legacy))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.VisibleCellSymbols)

	t.Setenv("GRIDCALC_AUTOFIT", "yes")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		Name    string
		Content string
		Err     error
		Message string
	}{
		{
			Name:    "missing colon",
			Content: "initialTableRows 3\n",
			Err:     ErrFormat,
		},
		{
			Name:    "unknown property",
			Content: strings.Replace(legacy, "autoFit", "autofitting", 1),
			Err:     ErrUnknown,
		},
		{
			Name:    "missing properties",
			Content: "initialTableRows:3\nmaxTableRows:4\n",
			Err:     ErrMissing,
			Message: "initialTableCols, maxTableCols",
		},
		{
			Name:    "negative size",
			Content: strings.Replace(legacy, "initialTableRows:4", "initialTableRows:-4", 1),
			Err:     ErrInvalid,
			Message: "initialTableRows:-4 - invalid value",
		},
		{
			Name:    "zero size",
			Content: strings.Replace(legacy, "visibleCellSymbols:8", "visibleCellSymbols:0", 1),
			Err:     ErrInvalid,
		},
		{
			Name:    "bad boolean",
			Content: strings.Replace(legacy, "autoFit:false", "autoFit:False", 1),
			Err:     ErrInvalid,
			Message: "autoFit:False - invalid value",
		},
		{
			Name:    "bad alignment",
			Content: strings.Replace(legacy, "initialAlignment:center", "initialAlignment:middle", 1),
			Err:     ErrInvalid,
		},
		{
			Name:    "bad number format",
			Content: legacy + "numberFormat:0.0x\n",
			Err:     ErrInvalid,
			Message: "numberFormat:0.0x - invalid value",
		},
		{
			Name:    "initial over max",
			Content: strings.Replace(legacy, "initialTableRows:4", "initialTableRows:40", 1),
			Err:     ErrInvalid,
		},
	}
	for _, c := range tests {
		t.Run(c.Name, func(t *testing.T) {
			_, err := Load(writeFile(t, "table.cfg", c.Content))
			require.Error(t, err)
			assert.ErrorIs(t, err, c.Err)
			if c.Message != "" {
				assert.Contains(t, err.Error(), c.Message)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.cfg"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseAlignment(t *testing.T) {
	for _, str := range []string{"left", "center", "right"} {
		a, err := ParseAlignment(str)
		require.NoError(t, err)
		assert.Equal(t, Alignment(str), a)
	}
	_, err := ParseAlignment("Left")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = "info"
	cfg.LogFormat = "json"

	logger, closer := cfg.Logger(&buf)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("shown", "row", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"row":1`)
}

func TestLoggerFile(t *testing.T) {
	cfg := Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "gridcalc.log")

	logger, closer := cfg.Logger(nil)
	logger.Warn("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for str, want := range tests {
		got, err := ParseLevel(str)
		require.NoError(t, err)
		assert.Equal(t, want, got, str)
	}
	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWatch(t *testing.T) {
	file := writeFile(t, "table.cfg", legacy)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loaded := make(chan Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, file, func(cfg Config, err error) {
			if err == nil {
				select {
				case loaded <- cfg:
				default:
				}
			}
		})
	}()

	updated := strings.Replace(legacy, "visibleCellSymbols:8", "visibleCellSymbols:6", 1)
	deadline := time.After(4 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-loaded:
			assert.Equal(t, 6, cfg.VisibleCellSymbols)
			cancel()
			assert.ErrorIs(t, <-done, context.Canceled)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(file, []byte(updated), 0o644))
		case <-deadline:
			t.Fatal("configuration not reloaded")
		}
	}
}

func TestProperties(t *testing.T) {
	cfg := Default()
	cfg.Alignment = AlignCenter
	cfg.VisibleCellSymbols = 4

	props := cfg.Properties()
	require.Len(t, props, 11)
	assert.Equal(t, "initialTableRows:3", props[0])
	assert.Contains(t, props, "initialAlignment:center")
	assert.NotContains(t, props, "logFile:")

	file := writeFile(t, "table.cfg", strings.Join(props, "\n"))
	got, err := Load(file)
	require.NoError(t, err)
	got.File = ""
	assert.Equal(t, cfg, got)
}

func TestNumberFormat(t *testing.T) {
	file := writeFile(t, "table.cfg", legacy+"numberFormat:#,###.##\n")
	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "#,###.##", cfg.NumberFormat)
	assert.Contains(t, cfg.Properties(), "numberFormat:#,###.##")

	f, err := cfg.Formatter()
	require.NoError(t, err)
	got, err := f.Format(value.Number(1234567.891))
	require.NoError(t, err)
	assert.Equal(t, "1,234,567.89", got)

	got, err = f.Format(value.Text("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	f, err = Default().Formatter()
	require.NoError(t, err)
	got, err = f.Format(value.Number(2.5))
	require.NoError(t, err)
	assert.Equal(t, "2.50", got)
}
