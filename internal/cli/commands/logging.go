package commands

import (
	"io"

	"code.cloudfoundry.org/lager/v3"
)

// NewLogger returns a lager logger writing to w. Only errors are logged
// unless verbose is set.
func NewLogger(w io.Writer, verbose bool) lager.Logger {
	level := lager.ERROR
	if verbose {
		level = lager.DEBUG
	}

	logger := lager.NewLogger("sdep")
	logger.RegisterSink(lager.NewWriterSink(w, level))
	return logger
}
