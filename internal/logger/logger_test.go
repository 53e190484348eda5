package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ostafen/carver/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestLoggerFormatsEvents(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, logger.InfoLevel).WithoutColor()

	l.Report(logger.Event{Stage: logger.StageMatch, Level: logger.InfoLevel, Message: "JPG header found", Offset: 0x20})
	l.Report(logger.Event{Stage: logger.StageSplit, Level: logger.SuccessLevel, Message: "file written", Offset: logger.NoOffset})
	l.Debug("hidden")
	l.Errorf("failed: %d", 7)

	require.Equal(t,
		"[*] INFO : JPG header found (offset 0x20)\n"+
			"[+] SUCCESS : file written\n"+
			"[-] ERROR : failed: 7\n",
		buf.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logger.DebugLevel, logger.ParseLevel("debug"))
	require.Equal(t, logger.WarnLevel, logger.ParseLevel("WARN"))
	require.Equal(t, logger.InfoLevel, logger.ParseLevel("whatever"))
}

func TestMultiAndSlogReporter(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rec := &logger.Recorder{}
	r := logger.Multi(rec, nil, logger.NewSlogReporter(slogger))

	r.Report(logger.Event{Stage: logger.StageSplit, Level: logger.SuccessLevel, Message: "written", Offset: logger.NoOffset, File: "jpg_0.jpg"})
	r.Report(logger.Event{Stage: logger.StageMatch, Level: logger.InfoLevel, Message: "found", Offset: 4})

	require.Len(t, rec.Events(""), 2)
	require.Len(t, rec.Events(logger.StageMatch), 1)
	require.Contains(t, buf.String(), "file=jpg_0.jpg")
	require.Contains(t, buf.String(), "offset=4")
	require.Contains(t, buf.String(), "stage=match")
}
