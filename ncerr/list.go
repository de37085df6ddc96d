package ncerr

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// List is an ordered collection of NETCONF errors, as returned in a
// single <rpc-reply>. The zero value is an empty list ready for use.
type List []*Error

// Append adds errs to the list, ignoring nil values
func (l *List) Append(errs ...*Error) {
	for _, err := range errs {
		if err != nil {
			*l = append(*l, err)
		}
	}
}

// Err returns l as an error, or nil if l is empty
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, 0, len(l))
	for _, e := range l {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d errors: %s", len(l), strings.Join(msgs, "; "))
}

// Reply returns an <rpc-reply> carrying every error in the list
func (l List) Reply() *Reply { return &Reply{Errors: l} }

// Reply is a NETCONF <rpc-reply> containing only <rpc-error> elements,
// the fragment a protocol layer returns to a client for an invalid
// request.
type Reply struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:netconf:base:1.0 rpc-reply"`
	Errors  []*Error `xml:"rpc-error"`
}

const baseNS = "urn:ietf:params:xml:ns:netconf:base:1.0"

// MarshalXML encodes the reply with each <rpc-error> inheriting the
// reply's default namespace.
func (r *Reply) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Space: baseNS, Local: "rpc-reply"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, err := range r.Errors {
		if err == nil {
			continue
		}
		if err := e.EncodeElement(err, xml.StartElement{Name: xml.Name{Local: "rpc-error"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// String returns the XML encoding of the reply
func (r *Reply) String() string {
	b, err := xml.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}
