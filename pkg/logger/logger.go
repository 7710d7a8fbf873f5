package logx

import (
	"io"
	"os"

	"github.com/arudraviharbommana/intelli-nlp/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: core.Development,
}

type LoggerOpts struct {
	Environment core.Environment
	// Output defaults to stderr so that CLI replies on stdout stay clean.
	Output io.Writer
}

func safe(otps ...LoggerOpts) *LoggerOpts {
	if len(otps) == 0 {
		return DefaultLoggerOpts
	}
	return &otps[0]
}

func Init(otps ...LoggerOpts) {
	opts := safe(otps...)
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch {
	case opts.Environment.IsProduction():
		log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	case opts.Environment.Verbose():
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Caller().Logger()
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	default:
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

// Disable silences all logging; used by tests and the quiet CLI flag.
func Disable() {
	log.Logger = zerolog.Nop()
}

// Conversation returns a child logger tagged with the conversation id.
func Conversation(conversationID string) zerolog.Logger {
	return log.Logger.With().Str("conversation_id", conversationID).Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}
