package xmlutil

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixMap(t *testing.T) {
	check := assert.New(t)
	pmap := NewPrefixMap(
		xml.Attr{Name: XMLName("nc", "xmlns"), Value: "urn:nc"},
		xml.Attr{Name: XMLName("xmlns"), Value: "urn:ex"},
		xml.Attr{Name: XMLName("ex", "xmlns"), Value: "urn:ex"},
		xml.Attr{Name: XMLName("operation", "urn:nc"), Value: "merge"})
	check.Len(pmap, 3, "only declarations")
	check.Equal("urn:nc", pmap.Namespace("nc"))
	check.Equal("urn:ex", pmap.Default())
	check.Equal([]string{"", "ex"}, pmap.Prefix("urn:ex"))
	check.Nil(pmap.Prefix("urn:none"))
	check.Empty(NewPrefixMap().Default())
}

func TestPrefixMapInherit(t *testing.T) {
	check := assert.New(t)
	parent := NewPrefixMap(xml.Attr{Name: XMLName("xmlns"), Value: "urn:a"})
	child := parent.Inherit(
		xml.Attr{Name: XMLName("xmlns"), Value: "urn:b"},
		xml.Attr{Name: XMLName("id"), Value: "ignored"})
	check.Equal("urn:a", parent.Default())
	check.Equal("urn:b", child.Default())
	check.Len(child, 1)
}
