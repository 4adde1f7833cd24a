// Package obslog provides the repository's single process-global structured
// logger, in the same shared-singleton shape as the logger.Sugar global this
// codebase's ancestor relies on throughout its massif and MMR packages.
package obslog

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sugar is the process-global logger. It is a no-op logger until Init is
// called; callers that never call Init still get a safe, silent logger
// rather than a nil-pointer panic.
var Sugar = zap.NewNop().Sugar()

var once sync.Once

// Init builds the process-global logger at the given level ("debug",
// "info", "warn", "error") and installs it as Sugar. Safe to call more than
// once; only the first call takes effect, mirroring logger.New's
// once-per-process contract.
func Init(level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	var initErr error
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.EncoderConfig.TimeKey = ""

		logger, err := cfg.Build()
		if err != nil {
			initErr = err
			return
		}
		Sugar = logger.Sugar()
	})
	return initErr
}
