package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/andaru/yangtext/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
)

// ParseXML reads an XML document into a new top node, whose children
// are the document's root elements. Whitespace-only text is dropped and
// namespace declarations are folded into each node's Namespace.
func ParseXML(r io.Reader) (*Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "xml parse")
	}
	top := NewElement(TopName)
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			if err := top.AddChild(fromXMLQuery(c)); err != nil {
				return nil, err
			}
		}
	}
	return top, nil
}

func fromXMLQuery(x *xmlquery.Node) *Node {
	n := NewElement(x.Data)
	n.Prefix = x.Prefix
	n.Namespace = x.NamespaceURI
	for _, a := range x.Attr {
		if xmlutil.IsNamespaceDecl(xml.Attr{Name: a.Name}) {
			continue
		}
		attr := NewAttribute(a.Name.Local, a.Value)
		attr.Prefix = a.Name.Space
		attr.Namespace = a.NamespaceURI
		_ = n.AddChild(attr)
	}
	for c := x.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			_ = n.AddChild(fromXMLQuery(c))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) != "" {
				_ = n.AddChild(NewBody(c.Data))
			}
		}
	}
	return n
}

// XMLOption is an EncodeXML option
type XMLOption func(*xmlEncoder)

// XMLSkipTop encodes only the children of the node passed to EncodeXML
func XMLSkipTop() XMLOption { return func(e *xmlEncoder) { e.skipTop = true } }

// XMLIndent indents each nested element by indent
func XMLIndent(indent string) XMLOption { return func(e *xmlEncoder) { e.indent = indent } }

type xmlEncoder struct {
	*xml.Encoder
	skipTop bool
	indent  string
}

// EncodeXML writes n as XML to w. A default namespace declaration is
// written wherever a node's namespace differs from its parent's; the
// namespace of a bound node is its schema module's.
func EncodeXML(w io.Writer, n *Node, opts ...XMLOption) error {
	e := &xmlEncoder{Encoder: xml.NewEncoder(w)}
	for _, opt := range opts {
		opt(e)
	}
	if e.indent != "" {
		e.Indent("", e.indent)
	}
	var err error
	if e.skipTop {
		err = n.Each(func(c *Node) error { return e.encode(c, xmlutil.NewPrefixMap()) }, TypeElement)
	} else {
		err = e.encode(n, xmlutil.NewPrefixMap())
	}
	if err != nil {
		return err
	}
	return errors.WithStack(e.Flush())
}

func (e *xmlEncoder) encode(n *Node, pmap xmlutil.PrefixMap) error {
	start := xml.StartElement{Name: xmlutil.XMLName(n.Name)}
	ns := n.Namespace
	if n.Spec != nil {
		ns = n.Spec.Module().Namespace
	}
	if ns != "" && ns != pmap.Default() {
		start.Attr = append(start.Attr, xml.Attr{Name: xmlutil.XMLName("xmlns"), Value: ns})
	}
	pmap = pmap.Inherit(start.Attr...)
	var attrs []xml.Attr
	for _, c := range n.children {
		if c.Type != TypeAttribute {
			continue
		}
		prefix := c.Prefix
		if c.Namespace != "" {
			if prefix == "" {
				prefix = attrPrefix(pmap, c.Namespace)
			}
			if pmap.Namespace(prefix) != c.Namespace {
				start.Attr = append(start.Attr, xml.Attr{Name: xmlutil.XMLName("xmlns:" + prefix), Value: c.Namespace})
				pmap = pmap.Inherit(xml.Attr{Name: xmlutil.XMLName(prefix, "xmlns"), Value: c.Namespace})
			}
		}
		name := c.Name
		if prefix != "" {
			name = prefix + ":" + name
		}
		attrs = append(attrs, xml.Attr{Name: xmlutil.XMLName(name), Value: c.Value})
	}
	start.Attr = append(start.Attr, attrs...)
	if err := e.EncodeToken(start); err != nil {
		return errors.WithStack(err)
	}
	for _, c := range n.children {
		var err error
		switch c.Type {
		case TypeBody:
			err = errors.WithStack(e.EncodeToken(xml.CharData(c.Value)))
		case TypeElement:
			err = e.encode(c, pmap)
		}
		if err != nil {
			return err
		}
	}
	return errors.WithStack(e.EncodeToken(start.End()))
}

// attrPrefix returns a prefix bound to ns in pmap, or a new one
func attrPrefix(pmap xmlutil.PrefixMap, ns string) string {
	for _, p := range pmap.Prefix(ns) {
		if p != "" {
			return p
		}
	}
	for i := len(pmap); ; i++ {
		if p := fmt.Sprintf("ns%d", i); pmap.Namespace(p) == "" {
			return p
		}
	}
}
