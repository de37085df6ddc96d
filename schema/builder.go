package schema

import "fmt"

// AddModule appends a module to the load order of s and returns it.
// Adding a module whose name is already loaded panics.
func (s *Spec) AddModule(name, prefix, namespace string) *Module {
	for _, m := range s.modules {
		if m.Name == name {
			panic(fmt.Sprintf("schema: module %q already loaded", name))
		}
	}
	m := &Module{Name: name, Prefix: prefix, Namespace: namespace, spec: s, index: len(s.modules)}
	s.modules = append(s.modules, m)
	return m
}

func (m *Module) add(kw Keyword, name string) *Node {
	n := &Node{keyword: kw, name: name, module: m, position: len(m.top)}
	m.top = append(m.top, n)
	return n
}

// Container adds a top-level container to the module
func (m *Module) Container(name string) *Node { return m.add(KeywordContainer, name) }

// List adds a top-level list with the given ordered keys
func (m *Module) List(name string, keys ...string) *Node {
	n := m.add(KeywordList, name)
	n.keys = keys
	return n
}

// Leaf adds a top-level leaf
func (m *Module) Leaf(name string) *Node { return m.add(KeywordLeaf, name) }

// LeafList adds a top-level leaf-list
func (m *Module) LeafList(name string) *Node { return m.add(KeywordLeafList, name) }

// Choice adds a top-level choice
func (m *Module) Choice(name string) *Node { return m.add(KeywordChoice, name) }

// Anydata adds a top-level anydata node
func (m *Module) Anydata(name string) *Node { return m.add(KeywordAnydata, name) }

func (n *Node) add(kw Keyword, name string, module *Module) *Node {
	switch n.keyword {
	case KeywordLeaf, KeywordLeafList, KeywordAnydata:
		panic(fmt.Sprintf("schema: cannot add %s %q to %s", kw, name, n))
	case KeywordChoice:
		if kw != KeywordCase {
			// shorthand case
			n = n.add(KeywordCase, name, module)
		}
	}
	if module == nil {
		module = n.module
	}
	c := &Node{keyword: kw, name: name, module: module, parent: n, position: len(n.children)}
	n.children = append(n.children, c)
	return c
}

// Container adds a child container
func (n *Node) Container(name string) *Node { return n.add(KeywordContainer, name, nil) }

// List adds a child list with the given ordered keys
func (n *Node) List(name string, keys ...string) *Node {
	c := n.add(KeywordList, name, nil)
	c.keys = keys
	return c
}

// Leaf adds a child leaf
func (n *Node) Leaf(name string) *Node { return n.add(KeywordLeaf, name, nil) }

// LeafList adds a child leaf-list
func (n *Node) LeafList(name string) *Node { return n.add(KeywordLeafList, name, nil) }

// Choice adds a child choice
func (n *Node) Choice(name string) *Node { return n.add(KeywordChoice, name, nil) }

// Case adds a case to a choice node
func (n *Node) Case(name string) *Node {
	if n.keyword != KeywordChoice {
		panic(fmt.Sprintf("schema: case %q added to %s", name, n))
	}
	return n.add(KeywordCase, name, nil)
}

// Anydata adds a child anydata node
func (n *Node) Anydata(name string) *Node { return n.add(KeywordAnydata, name, nil) }

// Augment adds a child of the given keyword owned by another module, as
// a YANG augment does.
func (n *Node) Augment(m *Module, kw Keyword, name string, keys ...string) *Node {
	c := n.add(kw, name, m)
	c.keys = keys
	return c
}

// Hide marks n hidden from text output and returns n
func (n *Node) Hide() *Node {
	n.hidden = true
	return n
}

// OrderedByUser marks a list or leaf-list as "ordered-by user" and returns n
func (n *Node) OrderedByUser() *Node {
	if n.keyword != KeywordList && n.keyword != KeywordLeafList {
		panic(fmt.Sprintf("schema: ordered-by on %s", n))
	}
	n.userOrdered = true
	return n
}

// Up returns the data parent of n, for chaining builder calls
func (n *Node) Up() *Node { return n.DataParent() }
