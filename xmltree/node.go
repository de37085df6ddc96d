// Package xmltree is an ordered, attributed XML tree whose element
// nodes may be bound to YANG schema nodes.
package xmltree

import (
	"fmt"
	"sort"

	"github.com/andaru/yangtext/schema"
	"github.com/pkg/errors"
)

// TopName is the name of the synthetic top node created by decoders
const TopName = "top"

// Type is a tree node kind
type Type int

const (
	// TypeElement is an element, the only kind with children
	TypeElement Type = iota
	// TypeAttribute is an element attribute
	TypeAttribute
	// TypeBody is element text content
	TypeBody
)

func (t Type) String() string {
	switch t {
	case TypeElement:
		return "element"
	case TypeAttribute:
		return "attribute"
	case TypeBody:
		return "body"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// BodyRole tags a BODY node as ordinary content or a list key value
// whose key name is not yet known.
type BodyRole int

const (
	BodyOrdinary BodyRole = iota
	BodyPendingKey
)

// ErrStop may be returned by an Each callback to end iteration early
// without error.
var ErrStop = errors.New("stop iteration")

// Node is a tree node. Elements own their children; Spec is a
// non-owning reference into a read-only schema and is nil until bound.
type Node struct {
	Type Type
	// Name is the local name of an element or attribute
	Name string
	// Prefix is the module name or XML prefix the name was written with
	Prefix string
	// Namespace is the XML namespace URI, when known
	Namespace string
	// Value is the text of a body or attribute
	Value string
	Role  BodyRole
	Spec  *schema.Node

	parent   *Node
	children []*Node
}

func NewElement(name string) *Node { return &Node{Type: TypeElement, Name: name} }

func NewBody(value string) *Node { return &Node{Type: TypeBody, Value: value} }

// NewPendingKey returns a body holding a list key value awaiting its key name
func NewPendingKey(value string) *Node {
	return &Node{Type: TypeBody, Value: value, Role: BodyPendingKey}
}

func NewAttribute(name, value string) *Node {
	return &Node{Type: TypeAttribute, Name: name, Value: value}
}

// Parent returns the parent element, or nil for a detached or top node
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) ChildCount() int { return len(n.children) }

// AddChild appends c to n's children, detaching c from any previous
// parent first. Only elements may have children.
func (n *Node) AddChild(c *Node) error {
	if n.Type != TypeElement {
		return errors.Errorf("cannot add child to %s node", n.Type)
	}
	if c == n {
		return errors.New("cannot add node to itself")
	}
	c.Detach()
	c.parent = n
	n.children = append(n.children, c)
	return nil
}

// Detach removes n from its parent, if any
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// RemoveChild removes c from n's children, reporting whether it was found
func (n *Node) RemoveChild(c *Node) bool {
	for i, it := range n.children {
		if it == c {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

func matchType(t Type, types []Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

// Each calls fn for each child of one of types (all children when
// types is empty), in order. It stops at the first error returned by
// fn, returning it unless it is ErrStop.
func (n *Node) Each(fn func(*Node) error, types ...Type) error {
	for _, c := range n.children {
		if !matchType(c.Type, types) {
			continue
		}
		if err := fn(c); err != nil {
			if err == ErrStop {
				return nil
			}
			return err
		}
	}
	return nil
}

// Find returns the first child named name of one of types
func (n *Node) Find(name string, types ...Type) *Node {
	for _, c := range n.children {
		if c.Name == name && matchType(c.Type, types) {
			return c
		}
	}
	return nil
}

// FindElement returns the first element child named name
func (n *Node) FindElement(name string) *Node { return n.Find(name, TypeElement) }

// Body returns the value of the first body child
func (n *Node) Body() string {
	for _, c := range n.children {
		if c.Type == TypeBody {
			return c.Value
		}
	}
	return ""
}

// ElementChildren returns the element children in order
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Type == TypeElement {
			out = append(out, c)
		}
	}
	return out
}

// CountExcept returns the number of children not of type t
func (n *Node) CountExcept(t Type) int {
	count := 0
	for _, c := range n.children {
		if c.Type != t {
			count++
		}
	}
	return count
}

// SortChildren stably sorts the children of n with less
func (n *Node) SortChildren(less func(a, b *Node) bool) {
	sort.SliceStable(n.children, func(i, j int) bool { return less(n.children[i], n.children[j]) })
}

// Module returns the name of the module n belongs to: its bound
// schema module, else the prefix it was written with.
func (n *Node) Module() string {
	if n.Spec != nil {
		return n.Spec.Module().Name
	}
	return n.Prefix
}

func (n *Node) String() string {
	switch n.Type {
	case TypeBody:
		return fmt.Sprintf("body %q", n.Value)
	case TypeAttribute:
		return fmt.Sprintf("attribute %s=%q", n.Name, n.Value)
	}
	if n.Prefix != "" {
		return "element " + n.Prefix + ":" + n.Name
	}
	return "element " + n.Name
}

// Equal reports whether a and b have the same structure: node types,
// names, values and ordered children.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Name != b.Name || a.Value != b.Value || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for n and each element descendant, depth first
func Walk(n *Node, fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	return n.Each(func(c *Node) error { return Walk(c, fn) }, TypeElement)
}
