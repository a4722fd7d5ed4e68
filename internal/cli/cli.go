package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console logger writing into w. It stays silent unless something
// goes wrong, or verbose is set.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.TimeKey = ""

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoder),
		zapcore.AddSync(w),
		level,
	))
}

// Execute runs the command and returns the process exit code. The error itself is
// already printed by cobra by that moment.
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}

	return 0
}
