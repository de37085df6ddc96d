package textsyntax

import (
	"fmt"
	"io"

	"github.com/andaru/yangtext/bind"
	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/xmltree"
)

// Option is a Decode option
type Option func(*decoder)

// WithSchema binds decoded trees against spec
func WithSchema(spec *schema.Spec) Option { return func(d *decoder) { d.spec = spec } }

// WithMode sets the bind mode, ModeModule by default
func WithMode(mode bind.Mode) Option { return func(d *decoder) { d.mode = mode } }

// WithParent binds the decoded statements beneath the schema node sn,
// as children of a top node bound to sn
func WithParent(sn *schema.Node) Option {
	return func(d *decoder) {
		d.parent = sn
		d.mode = bind.ModeParent
	}
}

// WithTop decodes statements as children of an existing node
func WithTop(top *xmltree.Node) Option { return func(d *decoder) { d.top = top } }

// WithMaxBufferSize bounds the input buffer, and so the longest token
func WithMaxBufferSize(n int) Option { return func(d *decoder) { d.maxBuffer = n } }

// EncodeOption is an Encoder option
type EncodeOption func(*Encoder)

// SkipTop encodes only the element children of the node passed to Encode
func SkipTop() EncodeOption { return func(e *Encoder) { e.skipTop = true } }

// WithLevel sets the initial indentation level, four spaces per level
func WithLevel(level int) EncodeOption { return func(e *Encoder) { e.level = level } }

// OutputFunc receives formatted encoder output
type OutputFunc func(format string, args ...interface{}) error

// WithOutput sends encoder output to fn instead of the encoder's writer
func WithOutput(fn OutputFunc) EncodeOption { return func(e *Encoder) { e.out = fn } }

func fprintf(w io.Writer) OutputFunc {
	return func(format string, args ...interface{}) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}
}
