package xmlutil

import (
	"encoding/xml"
	"strings"
)

// XMLName is a shortcut for creating xml.Name, where typically you want at least
// a local name, and perhaps a namespace value as well.
func XMLName(local string, spaces ...string) xml.Name {
	n := xml.Name{Local: local}
	if len(spaces) > 0 {
		n.Space = spaces[0]
	}
	return n
}

// SplitQName splits a qualified name "prefix:local" at the first colon.
// A name without a colon, or with an empty side, has no prefix.
func SplitQName(qname string) (prefix, local string) {
	if idx := strings.IndexByte(qname, ':'); idx > 0 && idx < len(qname)-1 {
		return qname[:idx], qname[idx+1:]
	}
	return "", qname
}

// IsNamespaceDecl reports whether attr is a default (xmlns) or
// prefixed (xmlns:pfx) namespace declaration.
func IsNamespaceDecl(attr xml.Attr) bool {
	return attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns")
}
