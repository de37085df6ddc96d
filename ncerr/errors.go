package ncerr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// Type represents the NETCONF error-type enumerate
type Type int

const (
	// TypeApplication is an application layer error
	TypeApplication Type = iota
	// TypeProtocol is a NETCONF protocol layer error
	TypeProtocol
	// TypeRPC is a NETCONF RPC layer error
	TypeRPC
	// TypeTransport is an error at the secure transport layer
	TypeTransport
)

var typeNames = [...]string{"application", "protocol", "rpc", "transport"}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t *Type) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for i, name := range typeNames {
		if string(b) == name {
			*t = Type(i)
			return nil
		}
	}
	return errors.New("unknown value")
}

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Severity represents the NETCONF error-severity enumerate
type Severity int

const (
	// SeverityError indicates "error" level
	SeverityError Severity = iota
	// SeverityWarning indicates "warning" level.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error represents a NETCONF <rpc-error>.
//
// Errors raised while decoding or binding a document carry the element
// name in Info.BadElement and, when known, the schema path in Path.
type Error struct {
	XMLName  xml.Name   `xml:"urn:ietf:params:xml:ns:netconf:base:1.0 rpc-error" json:"-"`
	Type     Type       `xml:"error-type" json:"error-type"`
	Tag      string     `xml:"error-tag" json:"error-tag"`
	Severity Severity   `xml:"error-severity" json:"error-severity"`
	AppTag   string     `xml:"error-app-tag,omitempty" json:"error-app-tag,omitempty"`
	Path     string     `xml:"error-path,omitempty" json:"error-path,omitempty"`
	Message  string     `xml:"error-message,omitempty" json:"error-message,omitempty"`
	Info     *ErrorInfo `xml:"error-info,omitempty" json:"error-info,omitempty"`
}

// ErrorInfo is the RFC6241 <error-info> content
type ErrorInfo struct {
	BadElement   string `xml:"bad-element,omitempty" json:"bad-element,omitempty"`
	BadNamespace string `xml:"bad-namespace,omitempty" json:"bad-namespace,omitempty"`
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s error tag:%s", e.Type, e.Tag)
	if e.AppTag != "" {
		s += " app-tag:" + e.AppTag
	}
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if info := e.Info; info != nil {
		if info.BadElement != "" {
			s += " bad-element:" + info.BadElement
		}
		if info.BadNamespace != "" {
			s += " bad-namespace:" + info.BadNamespace
		}
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

func newError(tag string, info *ErrorInfo, opts []Option) *Error {
	e := &Error{Tag: tag, Info: info}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func TooBig(opts ...Option) *Error { return newError("too-big", nil, opts) }

func MissingElement(elementName string, opts ...Option) *Error {
	return newError("missing-element", &ErrorInfo{BadElement: elementName}, opts)
}

func BadElement(elementName string, opts ...Option) *Error {
	return newError("bad-element", &ErrorInfo{BadElement: elementName}, opts)
}

func UnknownElement(elementName string, opts ...Option) *Error {
	return newError("unknown-element", &ErrorInfo{BadElement: elementName}, opts)
}

func UnknownNamespace(elementName, namespace string, opts ...Option) *Error {
	return newError("unknown-namespace",
		&ErrorInfo{BadElement: elementName, BadNamespace: namespace}, opts)
}

func OperationFailed(opts ...Option) *Error { return newError("operation-failed", nil, opts) }

func MalformedMessage(opts ...Option) *Error {
	e := newError("malformed-message", nil, opts)
	// error-type must be rpc for malformed-message
	e.Type = TypeRPC
	return e
}

// IsError returns the first *Error in err's chain
func IsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
