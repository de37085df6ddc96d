package xmltree

import (
	"strings"

	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Query returns the nodes selected by the XPath expression expr,
// evaluated with n as the context node. Name tests match local names
// only, as module qualified names are not resolved.
func Query(n *Node, expr string) ([]*Node, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "xpath %q", expr)
	}
	var out []*Node
	it := e.Select(newNavigator(n))
	for it.MoveNext() {
		if nav, ok := it.Current().(*navigator); ok {
			out = append(out, nav.node())
		}
	}
	return out, nil
}

// QueryOne returns the first node selected by expr, or nil
func QueryOne(n *Node, expr string) (*Node, error) {
	nodes, err := Query(n, expr)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

// Evaluate evaluates expr with n as context node, returning a float64,
// string, bool or, for node-sets, the selected nodes.
func Evaluate(n *Node, expr string) (interface{}, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "xpath %q", expr)
	}
	switch v := e.Evaluate(newNavigator(n)).(type) {
	case *xpath.NodeIterator:
		var out []*Node
		for v.MoveNext() {
			if nav, ok := v.Current().(*navigator); ok {
				out = append(out, nav.node())
			}
		}
		return out, nil
	default:
		return v, nil
	}
}

// navigator is an xpath.NodeNavigator over a tree. The root of the
// tree (the node with no parent) is the XPath root node.
type navigator struct {
	root, curr *Node
	// attr is the index of the current attribute in curr.children, or -1
	attr int
}

func newNavigator(n *Node) *navigator {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return &navigator{root: root, curr: n, attr: -1}
}

func (nav *navigator) node() *Node {
	if nav.attr >= 0 {
		return nav.curr.children[nav.attr]
	}
	return nav.curr
}

func (nav *navigator) NodeType() xpath.NodeType {
	if nav.attr >= 0 {
		return xpath.AttributeNode
	}
	switch {
	case nav.curr == nav.root:
		return xpath.RootNode
	case nav.curr.Type == TypeBody:
		return xpath.TextNode
	}
	return xpath.ElementNode
}

func (nav *navigator) LocalName() string { return nav.node().Name }

func (nav *navigator) Prefix() string { return "" }

func (nav *navigator) Value() string {
	n := nav.node()
	if n.Type != TypeElement {
		return n.Value
	}
	var sb strings.Builder
	_ = Walk(n, func(it *Node) error {
		return it.Each(func(b *Node) error {
			sb.WriteString(b.Value)
			return nil
		}, TypeBody)
	})
	return sb.String()
}

func (nav *navigator) Copy() xpath.NodeNavigator {
	c := *nav
	return &c
}

func (nav *navigator) MoveToRoot() {
	nav.curr, nav.attr = nav.root, -1
}

func (nav *navigator) MoveToParent() bool {
	if nav.attr >= 0 {
		nav.attr = -1
		return true
	}
	if nav.curr.parent == nil || nav.curr == nav.root {
		return false
	}
	nav.curr = nav.curr.parent
	return true
}

func (nav *navigator) MoveToNextAttribute() bool {
	if nav.curr.Type != TypeElement {
		return false
	}
	for i := nav.attr + 1; i < len(nav.curr.children); i++ {
		if nav.curr.children[i].Type == TypeAttribute {
			nav.attr = i
			return true
		}
	}
	return false
}

func (nav *navigator) MoveToChild() bool {
	if nav.attr >= 0 {
		return false
	}
	for _, c := range nav.curr.children {
		if c.Type != TypeAttribute {
			nav.curr = c
			return true
		}
	}
	return false
}

func (nav *navigator) MoveToFirst() bool {
	if nav.attr >= 0 || nav.curr.parent == nil || nav.curr == nav.root {
		return false
	}
	for _, c := range nav.curr.parent.children {
		if c.Type != TypeAttribute {
			nav.curr = c
			return true
		}
	}
	return false
}

func (nav *navigator) sibling(step int) bool {
	if nav.attr >= 0 || nav.curr.parent == nil || nav.curr == nav.root {
		return false
	}
	siblings := nav.curr.parent.children
	i := indexOf(siblings, nav.curr)
	for i += step; i >= 0 && i < len(siblings); i += step {
		if siblings[i].Type != TypeAttribute {
			nav.curr = siblings[i]
			return true
		}
	}
	return false
}

func (nav *navigator) MoveToNext() bool { return nav.sibling(1) }

func (nav *navigator) MoveToPrevious() bool { return nav.sibling(-1) }

func (nav *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.root != nav.root {
		return false
	}
	nav.curr, nav.attr = o.curr, o.attr
	return true
}

func indexOf(nodes []*Node, n *Node) int {
	for i, it := range nodes {
		if it == n {
			return i
		}
	}
	return -1
}
