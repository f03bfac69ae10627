// Package log provides the structured logging facade used by the rewind
// CLI and sources.
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context, backed by pluggable formatters and
// outputs:
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("tail"), log.Str("path", p))
//	l.Info("following file", log.Int("offset", 0))
//
// The core rewind package never logs; this facade exists for the binaries
// and I/O-facing sources built around it.
package log
