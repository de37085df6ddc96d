package textsyntax

import (
	"io"
	"strings"

	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/xmltree"
	"github.com/pkg/errors"
)

// Encoder writes trees in text syntax
type Encoder struct {
	out     OutputFunc
	skipTop bool
	level   int
}

// NewEncoder returns an Encoder writing to w
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	e := &Encoder{}
	if w != nil {
		e.out = fprintf(w)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeString returns the text syntax encoding of n
func EncodeString(n *xmltree.Node, opts ...EncodeOption) (string, error) {
	var sb strings.Builder
	if err := NewEncoder(&sb, opts...).Encode(n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Encode writes n, or with SkipTop its element children. Output depends
// only on the tree and the encoder options.
func (e *Encoder) Encode(n *xmltree.Node) error {
	if n == nil {
		return errors.New("textsyntax: encode nil node")
	}
	if e.out == nil {
		return errors.New("textsyntax: encoder has no output")
	}
	if e.skipTop {
		return e.siblings(n.ElementChildren(), e.level)
	}
	return e.siblings([]*xmltree.Node{n}, e.level)
}

// leafListState tracks an open leaf-list grouping across a sibling run
type leafListState struct {
	spec *schema.Node
}

func (st *leafListState) open() bool { return st.spec != nil }

func (e *Encoder) printf(format string, args ...interface{}) error {
	return errors.WithStack(e.out(format, args...))
}

func indent(level int) string { return strings.Repeat(" ", 4*level) }

// siblings encodes a run of sibling elements, closing any leaf-list
// grouping left open at its end
func (e *Encoder) siblings(nodes []*xmltree.Node, level int) error {
	var st leafListState
	for _, x := range nodes {
		if err := e.element(x, level, &st); err != nil {
			return err
		}
	}
	return e.closeLeafList(level, &st)
}

func (e *Encoder) closeLeafList(level int, st *leafListState) error {
	if !st.open() {
		return nil
	}
	st.spec = nil
	return e.printf("%s]\n", indent(level))
}

func (e *Encoder) element(x *xmltree.Node, level int, st *leafListState) error {
	sn := x.Spec
	if sn != nil && sn.Hidden() {
		return nil
	}
	if st.open() {
		if sn == st.spec {
			return e.printf("%s%s\n", indent(level+1), quote(x.Body()))
		}
		if err := e.closeLeafList(level, st); err != nil {
			return err
		}
	}

	var head strings.Builder
	head.WriteString(indent(level))
	if prefix := modulePrefix(x); prefix != "" {
		head.WriteString(prefix + ":")
	}
	head.WriteString(x.Name)

	isList := false
	if sn != nil {
		switch sn.Keyword() {
		case schema.KeywordLeafList:
			st.spec = sn
			return e.printf("%s [\n%s%s\n", head.String(), indent(level+1), quote(x.Body()))
		case schema.KeywordList:
			isList = true
			for _, k := range sn.Keys() {
				if kx := x.FindElement(k); kx != nil {
					head.WriteString(" " + quote(kx.Body()))
				}
			}
		}
	}

	var content []*xmltree.Node
	for _, c := range x.Children() {
		if c.Type == xmltree.TypeAttribute {
			continue
		}
		if c.Type == xmltree.TypeElement && isList && sn.IsKey(c.Name) {
			continue
		}
		content = append(content, c)
	}

	switch {
	case isList:
	case len(content) == 0:
		return e.printf("%s;\n", head.String())
	case len(content) == 1 && content[0].Type == xmltree.TypeBody:
		return e.printf("%s %s;\n", head.String(), quote(content[0].Value))
	}

	if err := e.printf("%s {\n", head.String()); err != nil {
		return err
	}
	var children []*xmltree.Node
	for _, c := range content {
		if c.Type == xmltree.TypeElement {
			children = append(children, c)
		}
	}
	if err := e.siblings(children, level+1); err != nil {
		return err
	}
	return e.printf("%s}\n", indent(level))
}

// modulePrefix returns the module name to qualify x with: that of a
// top-level node, or of a node in a different module than its parent.
func modulePrefix(x *xmltree.Node) string {
	if sn := x.Spec; sn != nil {
		if dp := sn.DataParent(); dp == nil || dp.Module() != sn.Module() {
			return sn.Module().Name
		}
		return ""
	}
	if x.Prefix == "" {
		return ""
	}
	if p := x.Parent(); p != nil && p.Module() == x.Prefix {
		return ""
	}
	return x.Prefix
}

// quote returns v, double quoted when it is empty or holds whitespace
// or syntax characters
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r\v\f;{}[]\"\\") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(v) + `"`
}
