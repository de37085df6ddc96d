package schema

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/pkg/errors"
)

// AutocliNamespace is the namespace of the clixon-autocli module, whose
// hide-show extension marks nodes hidden from text output
const AutocliNamespace = "http://clicon.org/autocli"

const autocliModule = "clixon-autocli"

// Source is a named YANG source text
type Source struct {
	Name string
	Data string
}

// LoadYANG reads YANG modules from paths, each naming a file or a
// directory whose *.yang files are all read, and returns the compiled
// Spec. Modules load in the order given, directory entries sorted by
// file name.
func LoadYANG(paths ...string) (*Spec, error) {
	var srcs []Source
	read := func(name string) error {
		b, err := os.ReadFile(name)
		if err != nil {
			return errors.WithStack(err)
		}
		srcs = append(srcs, Source{Name: name, Data: string(b)})
		return nil
	}
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !fi.IsDir() {
			if err := read(p); err != nil {
				return nil, err
			}
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p, "*.yang"))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sort.Strings(matches)
		for _, name := range matches {
			if err := read(name); err != nil {
				return nil, err
			}
		}
	}
	return ParseYANG(srcs...)
}

// ParseYANG compiles YANG source texts into a Spec. All imported
// modules must be among srcs.
func ParseYANG(srcs ...Source) (*Spec, error) {
	ms := yang.NewModules()
	var order []string
	for _, src := range srcs {
		stmts, err := yang.Parse(src.Data, src.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", src.Name)
		}
		for _, st := range stmts {
			if st.Keyword == "module" {
				order = append(order, st.Argument)
			}
		}
		if err := ms.Parse(src.Data, src.Name); err != nil {
			return nil, errors.Wrapf(err, "parse %s", src.Name)
		}
	}
	if errs := ms.Process(); len(errs) > 0 {
		for _, err := range errs {
			glog.Errorf("yang: %v", err)
		}
		return nil, errors.Errorf("yang processing failed with %d errors: %v", len(errs), errs[0])
	}

	byName := map[string]*yang.Module{}
	for _, m := range ms.Modules {
		byName[m.Name] = m
	}
	// modules pulled in other than by srcs load after, by name
	var rest []string
	seen := map[string]bool{}
	for _, name := range order {
		seen[name] = true
	}
	for name := range byName {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	c := &converter{spec: NewSpec(), modules: byName}
	for _, name := range order {
		ym := byName[name]
		if ym == nil {
			continue
		}
		var ns, prefix, rev string
		if ym.Namespace != nil {
			ns = ym.Namespace.Name
		}
		if ym.Prefix != nil {
			prefix = ym.Prefix.Name
		}
		if len(ym.Revision) > 0 {
			rev = ym.Revision[0].Name
		}
		m := c.spec.AddModule(ym.Name, prefix, ns)
		m.Revision = rev
	}
	for _, m := range c.spec.modules {
		ym := byName[m.Name]
		c.groupings = collectGroupings(ym.Statement())
		root := yang.ToEntry(ym)
		for _, e := range c.ordered(root) {
			if n := c.convert(e, nil, m); n != nil {
				n.position = len(m.top)
				m.top = append(m.top, n)
			}
		}
	}
	if err := c.spec.Validate(); err != nil {
		return nil, err
	}
	glog.V(1).Infof("yang: loaded %d modules", len(c.spec.modules))
	return c.spec, nil
}

type converter struct {
	spec      *Spec
	modules   map[string]*yang.Module
	groupings map[string]*yang.Statement
}

func (c *converter) convert(e *yang.Entry, parent *Node, def *Module) *Node {
	if e.RPC != nil {
		return nil
	}
	var kw Keyword
	switch {
	case e.IsLeafList():
		kw = KeywordLeafList
	case e.IsList():
		kw = KeywordList
	case e.IsLeaf():
		kw = KeywordLeaf
	case e.IsChoice():
		kw = KeywordChoice
	case e.IsCase():
		kw = KeywordCase
	case e.IsContainer():
		kw = KeywordContainer
	case e.Kind == yang.AnyDataEntry || e.Kind == yang.AnyXMLEntry:
		kw = KeywordAnydata
	default:
		return nil
	}
	m := def
	if ns := e.Namespace(); ns != nil && ns.Name != "" {
		if found := c.spec.FindModule(ns.Name); found != nil {
			m = found
		}
	}
	n := &Node{keyword: kw, name: e.Name, module: m, parent: parent}
	if kw == KeywordList {
		n.keys = strings.Fields(e.Key)
	}
	if e.ListAttr != nil && e.ListAttr.OrderedBy != nil && e.ListAttr.OrderedBy.Name == "user" {
		n.userOrdered = true
	}
	n.hidden = c.hidden(e)
	for _, ce := range c.ordered(e) {
		if cn := c.convert(ce, n, m); cn != nil {
			cn.position = len(n.children)
			n.children = append(n.children, cn)
		}
	}
	return n
}

// hidden reports whether e carries the autocli hide-show extension
func (c *converter) hidden(e *yang.Entry) bool {
	for _, ext := range e.Exts {
		i := strings.IndexByte(ext.Keyword, ':')
		if i < 0 || ext.Keyword[i+1:] != "hide-show" {
			continue
		}
		if c.autocliPrefix(e.Node, ext.Keyword[:i]) {
			return true
		}
	}
	return false
}

func (c *converter) autocliPrefix(n yang.Node, prefix string) bool {
	if n == nil {
		return false
	}
	root := yang.RootNode(n)
	if root == nil {
		return false
	}
	for _, imp := range root.Import {
		if imp.Prefix == nil || imp.Prefix.Name != prefix {
			continue
		}
		if imp.Name == autocliModule {
			return true
		}
		if m := c.modules[imp.Name]; m != nil && m.Namespace != nil && m.Namespace.Name == AutocliNamespace {
			return true
		}
	}
	return false
}

// ordered returns the data children of e in YANG declaration order.
// Children not found in the declaring statements, such as augments,
// follow in name order.
func (c *converter) ordered(e *yang.Entry) []*yang.Entry {
	if len(e.Dir) == 0 {
		return nil
	}
	var names []string
	if e.Node != nil {
		names = declOrder(e.Node.Statement(), c.groupings, map[string]bool{}, nil)
	}
	out := make([]*yang.Entry, 0, len(e.Dir))
	used := map[string]bool{}
	for _, name := range names {
		if ce, ok := e.Dir[name]; ok && !used[name] {
			used[name] = true
			out = append(out, ce)
		}
	}
	var rest []string
	for name := range e.Dir {
		if !used[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, e.Dir[name])
	}
	return out
}

func declOrder(s *yang.Statement, groupings map[string]*yang.Statement, expanded map[string]bool, out []string) []string {
	if s == nil {
		return out
	}
	for _, sub := range s.SubStatements() {
		switch sub.Keyword {
		case "container", "list", "leaf", "leaf-list", "choice", "case", "anydata", "anyxml":
			out = append(out, sub.Argument)
		case "uses":
			name := sub.Argument
			if i := strings.IndexByte(name, ':'); i >= 0 {
				name = name[i+1:]
			}
			if g := groupings[name]; g != nil && !expanded[name] {
				expanded[name] = true
				out = declOrder(g, groupings, expanded, out)
				delete(expanded, name)
			}
		}
	}
	return out
}

func collectGroupings(s *yang.Statement) map[string]*yang.Statement {
	groupings := map[string]*yang.Statement{}
	var walk func(*yang.Statement)
	walk = func(s *yang.Statement) {
		if s == nil {
			return
		}
		for _, sub := range s.SubStatements() {
			if sub.Keyword == "grouping" {
				if _, dup := groupings[sub.Argument]; !dup {
					groupings[sub.Argument] = sub
				}
			}
			walk(sub)
		}
	}
	walk(s)
	return groupings
}
