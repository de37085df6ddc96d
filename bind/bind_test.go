package bind

import (
	"testing"

	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/xmltree"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func testSpec() *schema.Spec {
	spec := schema.NewSpec()
	ex := spec.AddModule("ex", "e", "urn:ex")
	sys := ex.Container("system")
	sys.Leaf("hostname")
	sys.LeafList("server")
	sys.LeafList("search").OrderedByUser()
	intf := sys.List("interface", "name")
	intf.Leaf("name")
	intf.Leaf("mtu")
	route := sys.List("route", "prefix", "nexthop")
	route.Leaf("prefix")
	route.Leaf("nexthop")
	route.Leaf("metric")
	entry := ex.List("entry", "id")
	entry.Leaf("id")
	entry.Leaf("val")

	other := spec.AddModule("other", "o", "urn:other")
	other.Container("extra").Leaf("x")
	other.Container("system")
	return spec
}

// el builds an element with children; strings become bodies
func el(name string, children ...interface{}) *xmltree.Node {
	n := xmltree.NewElement(name)
	for _, c := range children {
		switch c := c.(type) {
		case string:
			_ = n.AddChild(xmltree.NewBody(c))
		case *xmltree.Node:
			_ = n.AddChild(c)
		}
	}
	return n
}

func keys(name string, values ...string) *xmltree.Node {
	n := xmltree.NewElement(name)
	for _, v := range values {
		_ = n.AddChild(xmltree.NewPendingKey(v))
	}
	return n
}

func add(n *xmltree.Node, children ...*xmltree.Node) *xmltree.Node {
	for _, c := range children {
		_ = n.AddChild(c)
	}
	return n
}

func names(n *xmltree.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.Name)
	}
	return out
}

func TestTreeModule(t *testing.T) {
	check := assert.New(t)
	spec := testSpec()
	top := el(xmltree.TopName,
		el("extra", el("x", "1")),
		el("system",
			add(keys("interface", "eth1"), el("mtu", "1500")),
			el("server", "9.9.9.9"),
			el("hostname", "r1"),
			keys("interface", "eth0"),
			el("server", "1.1.1.1"),
		),
	)
	if !check.NoError(Tree(top, spec, ModeModule)) {
		return
	}
	check.Equal([]string{"system", "extra"}, names(top), "module load order")
	sys := top.FindElement("system")
	check.Equal(spec.FindTop("system", "ex"), sys.Spec)
	check.Equal([]string{"hostname", "server", "server", "interface", "interface"}, names(sys))

	intfs := sys.Children()[3:]
	check.Equal("eth0", intfs[0].FindElement("name").Body())
	check.Equal("eth1", intfs[1].FindElement("name").Body())
	check.Equal([]string{"name", "mtu"}, names(intfs[1]))
	check.NotNil(intfs[1].FindElement("name").Spec)
	check.Equal(xmltree.BodyOrdinary, intfs[1].FindElement("name").Children()[0].Role)
	check.Equal("1.1.1.1", sys.Children()[1].Body())
}

func TestTreePrefix(t *testing.T) {
	check := assert.New(t)
	spec := testSpec()
	sys := el("system")
	sys.Prefix = "other"
	top := el(xmltree.TopName, sys)
	check.NoError(Tree(top, spec, ModeModule))
	check.Equal("other", sys.Spec.Module().Name)

	ns := el("extra")
	ns.Namespace = "urn:other"
	check.NoError(Tree(el(xmltree.TopName, ns), spec, ModeModule))
	check.NotNil(ns.Spec)
}

func TestTreeMultiKey(t *testing.T) {
	check := assert.New(t)
	top := el(xmltree.TopName, el("system",
		add(keys("route", "10.0.0.0/8", "b"), el("metric", "5")),
		keys("route", "10.0.0.0/8", "a"),
	))
	if !check.NoError(Tree(top, testSpec(), ModeModule)) {
		return
	}
	routes := top.FindElement("system").Children()
	check.Equal([]string{"prefix", "nexthop"}, names(routes[0]))
	check.Equal("a", routes[0].FindElement("nexthop").Body())
	check.Equal([]string{"prefix", "nexthop", "metric"}, names(routes[1]))
}

func TestTreeInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		top  *xmltree.Node
		tags []string
	}{
		{
			name: "unknown siblings",
			top:  el(xmltree.TopName, el("system", el("foo", "1"), el("bar", "2"))),
			tags: []string{"unknown-element", "unknown-element"},
		},
		{
			name: "unknown top",
			top:  el(xmltree.TopName, el("nothere"), el("system", el("nope"))),
			tags: []string{"unknown-element", "unknown-element"},
		},
		{
			name: "unknown module",
			top: func() *xmltree.Node {
				sys := el("system")
				sys.Prefix = "zz"
				return el(xmltree.TopName, sys)
			}(),
			tags: []string{"unknown-namespace"},
		},
		{
			name: "missing key",
			top:  el(xmltree.TopName, el("entry", el("val", "x"))),
			tags: []string{"missing-element"},
		},
		{
			name: "keys on leaf",
			top:  el(xmltree.TopName, el("system", keys("hostname", "a", "b"))),
			tags: []string{"bad-element"},
		},
		{
			name: "value on container",
			top:  el(xmltree.TopName, el("system", "x")),
			tags: []string{"bad-element"},
		},
		{
			name: "key value and key leaf",
			top:  el(xmltree.TopName, add(keys("entry", "7"), el("id", "8"), el("val", "x"))),
			tags: []string{"bad-element"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Tree(tc.top, testSpec(), ModeModule)
			inv, ok := IsInvalid(err)
			if assert.True(t, ok, "want *Invalid, got %v", err) {
				var tags []string
				for _, e := range inv.Errors {
					tags = append(tags, e.Tag)
				}
				assert.Equal(t, tc.tags, tags)
				assert.Contains(t, inv.Reply().String(), "<rpc-error>")
			}
		})
	}
}

func TestTreeUnknownChildrenNotVisited(t *testing.T) {
	top := el(xmltree.TopName, el("system", el("foo", el("bar"), el("baz"))))
	inv, ok := IsInvalid(Tree(top, testSpec(), ModeModule))
	if assert.True(t, ok) {
		assert.Len(t, inv.Errors, 1)
		assert.Equal(t, "foo", inv.Errors[0].Info.BadElement)
	}
}

func TestTreeKeyRepeated(t *testing.T) {
	check := assert.New(t)
	entry := add(keys("entry", "7"), el("id", "8"))
	inv, ok := IsInvalid(Tree(el(xmltree.TopName, entry), testSpec(), ModeModule))
	if check.True(ok) && check.Len(inv.Errors, 1) {
		check.Equal("entry", inv.Errors[0].Info.BadElement)
		check.Contains(inv.Errors[0].Message, "7")
	}
	var elems, pending []string
	_ = entry.Each(func(c *xmltree.Node) error {
		elems = append(elems, c.Name)
		return nil
	}, xmltree.TypeElement)
	_ = entry.Each(func(c *xmltree.Node) error {
		if c.Role == xmltree.BodyPendingKey {
			pending = append(pending, c.Value)
		}
		return nil
	}, xmltree.TypeBody)
	check.Equal([]string{"id"}, elems, "no second key leaf")
	check.Equal("8", entry.FindElement("id").Body())
	check.Equal([]string{"7"}, pending, "value kept")
}

func TestTreeKeyMismatch(t *testing.T) {
	check := assert.New(t)
	top := el(xmltree.TopName, keys("entry", "a", "b"))
	err := Tree(top, testSpec(), ModeModule)
	if check.Error(err) {
		_, invalid := IsInvalid(err)
		check.False(invalid)
		check.Equal(ErrKeyMismatch, errors.Cause(err))
		check.Contains(err.Error(), "text parser, key and body mismatch")
	}
}

func TestTreeModeModuleNext(t *testing.T) {
	check := assert.New(t)
	wrapper := el("config", el("system", el("hostname", "r1")), keys("entry", "7"))
	top := el(xmltree.TopName, wrapper)
	if check.NoError(Tree(top, testSpec(), ModeModuleNext)) {
		check.Nil(wrapper.Spec)
		check.Equal([]string{"system", "entry"}, names(wrapper))
		check.NotNil(wrapper.FindElement("entry").FindElement("id"))
	}
}

func TestTreeModeParent(t *testing.T) {
	check := assert.New(t)
	spec := testSpec()
	sys := el("system", el("hostname", "r1"), el("bogus"))
	sys.Spec = spec.FindTop("system", "ex")
	inv, ok := IsInvalid(Tree(sys, spec, ModeParent))
	if check.True(ok) {
		check.Len(inv.Errors, 1)
		check.Equal("/ex:system", inv.Errors[0].Path)
	}
	check.NotNil(sys.FindElement("hostname").Spec)

	check.Error(Tree(el("system"), spec, ModeParent), "unbound parent")

	sys = el("system", el("hostname", "r2"))
	sys.Spec = spec.FindTop("system", "ex")
	if check.NoError(Tree(sys, nil, ModeParent), "parent mode needs no spec") {
		check.NotNil(sys.FindElement("hostname").Spec)
	}
	check.Error(Tree(nil, spec, ModeModule))
	check.Error(Tree(el("x"), nil, ModeModule))
}

func TestParseMode(t *testing.T) {
	check := assert.New(t)
	for _, m := range []Mode{ModeModule, ModeModuleNext, ModeParent} {
		got, err := ParseMode(m.String())
		check.NoError(err)
		check.Equal(m, got)
	}
	_, err := ParseMode("sideways")
	check.Error(err)
}
