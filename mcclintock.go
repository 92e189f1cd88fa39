// Package mcclintock stages the shared artifacts of a transposable-element
// detection workflow and drives five external detection pipelines over them.
package mcclintock

import (
	"io"
	"log"
)

var (
	Info = log.New(io.Discard, "", 0)
	Warn = log.New(io.Discard, "", 0)
)
