package main

import (
	"errors"
	"io"
	"syscall"

	"github.com/mnightingale/aseq"
)

// isBrokenPipe reports whether stdout was closed by the consumer, e.g. `| head`.
func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// isUsageError reports whether the usage text should accompany err.
func isUsageError(err error) bool {
	return errors.Is(err, errNoFile) ||
		errors.Is(err, errArgCount) ||
		errors.Is(err, aseq.ErrInvalidEncoding) ||
		errors.Is(err, aseq.ErrInvalidContextLength) ||
		errors.Is(err, errOpenFailed)
}
