package mython

import "io"

// Context carries the side effects available to evaluation: today, only
// the output stream that Print writes to. It is owned by the driver and
// referenced non-owningly by every evaluation.
type Context struct {
	Out io.Writer
}

// NewContext returns a Context writing to out.
func NewContext(out io.Writer) *Context {
	return &Context{Out: out}
}
