// Package logging wraps zap the way dphaener-conduit's LSP server
// does: a development logger when verbose diagnostics are requested,
// a no-op otherwise, so the compiler never pays for logging it didn't
// ask for.
package logging

import "go.uber.org/zap"

// New builds a *zap.Logger: a human-readable development logger when
// verbose is true, or a no-op logger that discards everything.
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
