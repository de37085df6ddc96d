package textsyntax

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andaru/yangtext/bind"
	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/xmltree"
	"github.com/andaru/yangtext/xmlutil"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type decoder struct {
	spec      *schema.Spec
	mode      bind.Mode
	parent    *schema.Node
	top       *xmltree.Node
	maxBuffer int

	lx     *lexer
	peeked *token
}

// Decode parses text syntax from r into a tree. Statements become
// children of a new top node named xmltree.TopName, or of the WithTop
// node. With a schema or a WithParent node the tree is then bound.
//
// A nil error means success. A *bind.Invalid error means the document
// does not match the schema; the bound tree is returned with it. Any
// other error is a hard error: a new top node is released and nil is
// returned, and statements added to a WithTop node are removed.
func Decode(r io.Reader, opts ...Option) (*xmltree.Node, error) {
	d := &decoder{maxBuffer: DefaultMaxBufferSize}
	for _, opt := range opts {
		opt(d)
	}
	top := d.top
	if top == nil {
		top = xmltree.NewElement(xmltree.TopName)
	}
	if d.parent != nil && top.Spec == nil {
		top.Spec = d.parent
	}
	existing := top.ChildCount()
	release := func() {
		if d.top == nil {
			return
		}
		added := append([]*xmltree.Node(nil), top.Children()[existing:]...)
		for _, c := range added {
			c.Detach()
		}
	}

	d.lx = newLexer(r, d.maxBuffer)
	if err := d.stmts(top, tokEOF); err != nil {
		release()
		return nil, err
	}
	if d.spec == nil && d.parent == nil {
		return top, nil
	}
	err := bind.Tree(top, d.spec, d.mode)
	if err == nil {
		glog.V(1).Infof("textsyntax: decoded %d statements, %d lines", top.ChildCount()-existing, d.lx.line)
		return top, nil
	}
	if _, ok := bind.IsInvalid(err); ok {
		return top, err
	}
	release()
	return nil, err
}

// DecodeString parses the text syntax document s
func DecodeString(s string, opts ...Option) (*xmltree.Node, error) {
	return Decode(strings.NewReader(s), opts...)
}

// DecodeFile parses the text syntax file at path
func DecodeFile(path string, opts ...Option) (*xmltree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return Decode(f, opts...)
}

func (d *decoder) next() (token, error) {
	if t := d.peeked; t != nil {
		d.peeked = nil
		return *t, nil
	}
	return d.lx.next()
}

func (d *decoder) peek() (token, error) {
	if d.peeked == nil {
		t, err := d.lx.next()
		if err != nil {
			return t, err
		}
		d.peeked = &t
	}
	return *d.peeked, nil
}

func unexpected(t token, what string) error {
	return errors.WithStack(SyntaxError{Message: fmt.Sprintf("unexpected %s, %s", t, what), Line: t.line})
}

// stmts parses statements into parent until the closing token
func (d *decoder) stmts(parent *xmltree.Node, closing tokenKind) error {
	for {
		t, err := d.next()
		if err != nil {
			return err
		}
		switch t.kind {
		case closing:
			return nil
		case tokWord:
			if err := d.stmt(parent, t); err != nil {
				return err
			}
		default:
			return unexpected(t, "expecting a statement name")
		}
	}
}

func newElement(id string) *xmltree.Node {
	prefix, name := xmlutil.SplitQName(id)
	x := xmltree.NewElement(name)
	x.Prefix = prefix
	return x
}

// stmt parses the remainder of the statement named by id
func (d *decoder) stmt(parent *xmltree.Node, id token) error {
	x := newElement(id.text)
	var values []string
	for {
		t, err := d.next()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokWord, tokString:
			values = append(values, t.text)

		case tokSemi:
			switch len(values) {
			case 0:
			case 1:
				_ = x.AddChild(xmltree.NewBody(values[0]))
			default:
				addKeys(x, values)
			}
			return parent.AddChild(x)

		case tokLBrace:
			addKeys(x, values)
			if err := parent.AddChild(x); err != nil {
				return err
			}
			return d.stmts(x, tokRBrace)

		case tokLBracket:
			if len(values) > 0 {
				return unexpected(t, "leaf-list values follow the name")
			}
			return d.leafList(parent, id.text)

		case tokEOF:
			return errors.WithStack(SyntaxError{
				Message: fmt.Sprintf("unexpected end of input in statement %q", id.text), Line: id.line})

		default:
			return unexpected(t, fmt.Sprintf("in statement %q", id.text))
		}
	}
}

func addKeys(x *xmltree.Node, values []string) {
	for _, v := range values {
		_ = x.AddChild(xmltree.NewPendingKey(v))
	}
}

// leafList parses the values of `id [ v* ]`, each becoming an element
// named id with one body. A trailing ';' is optional.
func (d *decoder) leafList(parent *xmltree.Node, id string) error {
	for {
		t, err := d.next()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokWord, tokString:
			x := newElement(id)
			_ = x.AddChild(xmltree.NewBody(t.text))
			if err := parent.AddChild(x); err != nil {
				return err
			}
		case tokRBracket:
			if t, err := d.peek(); err != nil {
				return err
			} else if t.kind == tokSemi {
				_, _ = d.next()
			}
			return nil
		case tokEOF:
			return errors.WithStack(SyntaxError{
				Message: fmt.Sprintf("unexpected end of input in leaf-list %q", id), Line: t.line})
		default:
			return unexpected(t, fmt.Sprintf("in leaf-list %q", id))
		}
	}
}
