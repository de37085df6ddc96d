package schema

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Keyword is the YANG statement keyword of a schema node
type Keyword int

const (
	// KeywordUnknown is a node of a kind not modeled here
	KeywordUnknown Keyword = iota
	// KeywordContainer is a YANG container
	KeywordContainer
	// KeywordList is a YANG list, with at least one key
	KeywordList
	// KeywordLeaf is a YANG leaf
	KeywordLeaf
	// KeywordLeafList is a YANG leaf-list
	KeywordLeafList
	// KeywordChoice is a YANG choice, transparent in data trees
	KeywordChoice
	// KeywordCase is a YANG case, transparent in data trees
	KeywordCase
	// KeywordAnydata is a YANG anydata or anyxml node
	KeywordAnydata
)

var keywordNames = [...]string{"unknown", "container", "list", "leaf", "leaf-list", "choice", "case", "anydata"}

func (k Keyword) String() string {
	if k >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("Keyword(%d)", int(k))
}

// Module is a YANG module identity
type Module struct {
	Name      string
	Prefix    string
	Namespace string
	Revision  string

	spec  *Spec
	index int
	top   []*Node
}

// Is reports whether id names m by module name, YANG prefix or XML namespace
func (m *Module) Is(id string) bool {
	return m != nil && id != "" && (id == m.Name || id == m.Prefix || id == m.Namespace)
}

// Nodes returns the module's top-level schema nodes in declaration order
func (m *Module) Nodes() []*Node { return m.top }

func (m *Module) String() string { return m.Name }

// Node is a read-only YANG schema node.
type Node struct {
	keyword     Keyword
	name        string
	module      *Module
	parent      *Node
	children    []*Node
	keys        []string
	position    int
	hidden      bool
	userOrdered bool
}

func (n *Node) Keyword() Keyword { return n.keyword }
func (n *Node) Name() string     { return n.name }
func (n *Node) Module() *Module  { return n.module }

// Parent returns the parent schema node, or nil for top-level nodes.
// The parent may be a choice or case node.
func (n *Node) Parent() *Node { return n.parent }

// DataParent returns the closest ancestor which is not a choice or case
func (n *Node) DataParent() *Node {
	p := n.parent
	for p != nil && (p.keyword == KeywordChoice || p.keyword == KeywordCase) {
		p = p.parent
	}
	return p
}

// Children returns the direct schema children in declaration order
func (n *Node) Children() []*Node { return n.children }

// Keys returns the ordered key leaf names of a list node
func (n *Node) Keys() []string { return n.keys }

// IsKey reports whether name is one of the list node's keys
func (n *Node) IsKey(name string) bool {
	for _, k := range n.keys {
		if k == name {
			return true
		}
	}
	return false
}

// Index returns the canonical position of n among its schema siblings
func (n *Node) Index() int { return n.position }

// Hidden reports whether the node is marked hidden from text output
func (n *Node) Hidden() bool { return n.hidden }

// UserOrdered reports whether a list or leaf-list is "ordered-by user"
func (n *Node) UserOrdered() bool { return n.userOrdered }

// Path returns the schema path of n, module qualified at the top and at
// each module boundary, e.g. /ex:system/interface.
func (n *Node) Path() string {
	var parts []string
	for it := n; it != nil; it = it.parent {
		if it.keyword == KeywordChoice || it.keyword == KeywordCase {
			continue
		}
		name := it.name
		if dp := it.DataParent(); dp == nil || dp.module != it.module {
			name = it.module.Name + ":" + name
		}
		parts = append(parts, name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

func (n *Node) String() string { return n.keyword.String() + " " + n.Path() }

// Child returns the data child of n named name. If module is non-empty,
// the child must belong to that module (by name, prefix or namespace).
// Choice and case levels are searched through.
func (n *Node) Child(name, module string) *Node { return findIn(n.children, name, module) }

func findIn(nodes []*Node, name, module string) *Node {
	for _, c := range nodes {
		switch c.keyword {
		case KeywordChoice, KeywordCase:
			if found := findIn(c.children, name, module); found != nil {
				return found
			}
		default:
			if c.name == name && (module == "" || c.module.Is(module)) {
				return c
			}
		}
	}
	return nil
}

// Order compares the canonical (declaration) order of two schema nodes
// which are data siblings, returning -1, 0 or +1. Top-level nodes of
// different modules order by module load order.
func Order(a, b *Node) int {
	if a == b {
		return 0
	}
	ca, cb := ancestry(a), ancestry(b)
	// skip the common prefix of the two ancestor chains
	i := 0
	for i < len(ca) && i < len(cb) && ca[i] == cb[i] {
		i++
	}
	switch {
	case i == len(ca):
		return -1
	case i == len(cb):
		return 1
	}
	x, y := ca[i], cb[i]
	if i == 0 && x.module != y.module {
		return compareInt(x.module.index, y.module.index)
	}
	return compareInt(x.position, y.position)
}

// ancestry returns the chain of nodes from the top-level ancestor to n
func ancestry(n *Node) []*Node {
	var chain []*Node
	for it := n; it != nil; it = it.parent {
		chain = append(chain, it)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Spec is a set of loaded YANG modules
type Spec struct {
	modules []*Module
}

// NewSpec returns an empty Spec
func NewSpec() *Spec { return &Spec{} }

// Modules returns the modules in load order
func (s *Spec) Modules() []*Module { return s.modules }

// FindModule returns the module named id by name, prefix or namespace
func (s *Spec) FindModule(id string) *Module {
	for _, m := range s.modules {
		if m.Is(id) {
			return m
		}
	}
	return nil
}

// FindTop returns the top-level data node named name. If module is
// empty, modules are searched in load order and the first match wins.
func (s *Spec) FindTop(name, module string) *Node {
	for _, m := range s.modules {
		if module != "" && !m.Is(module) {
			continue
		}
		if found := findIn(m.top, name, ""); found != nil {
			return found
		}
	}
	return nil
}

// Validate checks structural constraints of the schema: every list has
// at least one key, and each key names a leaf child of the list.
func (s *Spec) Validate() error {
	var walk func(nodes []*Node) error
	walk = func(nodes []*Node) error {
		for _, n := range nodes {
			if n.keyword == KeywordList {
				if len(n.keys) == 0 {
					return errors.Errorf("list %s has no keys", n.Path())
				}
				for _, k := range n.keys {
					if c := n.Child(k, ""); c == nil || c.keyword != KeywordLeaf {
						return errors.Errorf("list %s key %q is not a leaf child", n.Path(), k)
					}
				}
			}
			if err := walk(n.children); err != nil {
				return err
			}
		}
		return nil
	}
	for _, m := range s.modules {
		if err := walk(m.top); err != nil {
			return err
		}
	}
	return nil
}
