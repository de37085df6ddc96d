package xmlutil

import (
	"encoding/xml"
	"sort"
)

// PrefixMap is a prefix to namespace URI map. The empty prefix holds the
// default namespace.
type PrefixMap map[string]string

// NewPrefixMap returns a PrefixMap, containing the namespace
// declarations found in the passed XML attributes
func NewPrefixMap(attrs ...xml.Attr) PrefixMap {
	return PrefixMap{}.Inherit(attrs...)
}

// Inherit returns a copy of m overridden by the namespace declarations
// in attrs, as seen by a child element declaring them.
func (m PrefixMap) Inherit(attrs ...xml.Attr) PrefixMap {
	pmap := make(PrefixMap, len(m)+len(attrs))
	for k, v := range m {
		pmap[k] = v
	}
	for _, attr := range attrs {
		switch {
		case attr.Name.Space == "xmlns":
			pmap[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			pmap[""] = attr.Value
		}
	}
	return pmap
}

// Namespace returns the namespace URI for the given prefix
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

// Default returns the default namespace URI
func (m PrefixMap) Default() string { return m[""] }

// Prefix returns any prefixes found for the namespace URI, sorted lexically
func (m PrefixMap) Prefix(nsURI string) (pfxes []string) {
	for k, v := range m {
		if nsURI == v {
			pfxes = append(pfxes, k)
		}
	}
	sort.Strings(pfxes)
	return pfxes
}
