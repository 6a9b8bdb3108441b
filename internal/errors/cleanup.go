// Package errors provides error handling helpers for stacklayout.
package errors

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// DeferClose closes an io.Closer and logs a failure instead of dropping it.
// Use this in defer statements.
func DeferClose(logger zerolog.Logger, closer io.Closer, msg string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Msg(msg)
	}
}

// Must panics if err is not nil.
// Use only for command wiring where failure is a programming error.
func Must(err error, msg string) {
	if err != nil {
		panic(fmt.Sprintf("%s: %v", msg, err))
	}
}
