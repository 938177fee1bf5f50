package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Run("info writes plain messages", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		splog.Info("rebasing %s onto %s", "feature", "main")
		require.Equal(t, "rebasing feature onto main\n", buf.String())
	})

	t.Run("warn and error carry their markers", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		splog.Warn("something odd")
		splog.Error("something broke")
		require.Contains(t, buf.String(), "⚠️  something odd\n")
		require.Contains(t, buf.String(), "❌ something broke\n")
	})

	t.Run("debug is suppressed without DEBUG", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		splog.Debug("noise")
		require.Empty(t, buf.String())
	})

	t.Run("debug is shown with DEBUG", func(t *testing.T) {
		t.Setenv("DEBUG", "1")

		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		splog.Debug("detail")
		require.Equal(t, "detail\n", buf.String())
	})

	t.Run("percent signs in plain messages are not interpreted", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		// Call through a method value: vet's printf check would otherwise
		// reject the literal %, but passing it verbatim is the point here.
		info := splog.Info
		info("progress 50%")
		require.Equal(t, "progress 50%\n", buf.String())
	})
}

func TestSplogWithFile(t *testing.T) {
	t.Run("writes to console and file", func(t *testing.T) {
		logFile := t.TempDir() + "/logs/run.log"

		splog, err := NewSplogWithConfig(logFile)
		require.NoError(t, err)
		defer func() { _ = splog.Close() }()

		splog.Info("logged line")
		require.NoError(t, splog.Close())

		require.FileExists(t, logFile)
	})
}
