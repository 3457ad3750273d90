// Package log builds [log/slog] handlers for colordropper commands.
//
// Levels are [LevelError], [LevelWarn], [LevelInfo] and [LevelDebug]. Records
// are written as [FormatJSON], [FormatLogfmt] or [FormatText]; the text format
// is rendered by [charm.land/log/v2].
//
// Commands register the log flags on their root and open a handler once
// flags are parsed:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(root.PersistentFlags())
//
//	handler, closeLog, err := cfg.Open(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// The terminal viewer cannot share the screen with log output, so it logs
// into a [Publisher] and renders the newest entry itself:
//
//	pub := log.NewPublisher(log.WithBufferSize(8))
//	handler, _ := cfg.NewHandler(pub)
//	sub := pub.Subscribe()
//	line := <-sub.C()
package log
