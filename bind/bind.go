// Package bind attaches YANG schema nodes to a parsed data tree,
// materializes positional list keys and sorts the tree into canonical
// schema order.
//
// Binding has three outcomes. A nil error means every element was
// bound. An *Invalid error means the document does not match the
// schema; it carries every failure found, as binding continues past
// failed nodes. Any other error is a hard error, such as a key count
// mismatch, and aborts the operation.
package bind

import (
	"fmt"
	"strings"

	"github.com/andaru/yangtext/ncerr"
	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/xmltree"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Mode selects how the element children of the top node are resolved
type Mode int

const (
	// ModeModule binds each element child of the top node as a
	// top-level schema node, within the module it is prefixed with or
	// else the first loaded module declaring it.
	ModeModule Mode = iota
	// ModeModuleNext leaves the element children of the top node
	// unbound and binds their children as top-level schema nodes.
	ModeModuleNext
	// ModeParent binds children of an already bound top node beneath
	// its schema node.
	ModeParent
)

func (m Mode) String() string {
	switch m {
	case ModeModule:
		return "module"
	case ModeModuleNext:
		return "module-next"
	case ModeParent:
		return "parent"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode named s, as returned by Mode.String
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeModule, ModeModuleNext, ModeParent} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeModule, errors.Errorf("unknown bind mode %q", s)
}

// Tree binds the element children of top against spec, then
// materializes list keys and, when binding succeeded, sorts the tree
// into canonical order. ModeParent binds against top.Spec alone, so
// spec may be nil.
func Tree(top *xmltree.Node, spec *schema.Spec, mode Mode) error {
	if top == nil {
		return errors.New("bind: nil tree")
	}
	if spec == nil && mode != ModeParent {
		return errors.New("bind: nil schema")
	}
	b := &binder{spec: spec}
	switch mode {
	case ModeModule:
		b.bindTops(top)
	case ModeModuleNext:
		_ = top.Each(func(w *xmltree.Node) error {
			b.bindTops(w)
			return nil
		}, xmltree.TypeElement)
	case ModeParent:
		if top.Spec == nil {
			return errors.Errorf("bind: %s has no schema node", top)
		}
		b.bindChildren(top)
	default:
		return errors.Errorf("bind: unknown mode %s", mode)
	}

	if err := Keys(top); err != nil {
		return err
	}
	b.check(top)
	if len(b.errs) > 0 {
		glog.V(1).Infof("bind: %d failures in %s mode", len(b.errs), mode)
		return &Invalid{Errors: b.errs}
	}
	SortTree(top)
	return nil
}

type binder struct {
	spec *schema.Spec
	errs ncerr.List
}

// moduleOf returns the module id an element was written with
func moduleOf(x *xmltree.Node) string {
	if x.Prefix != "" {
		return x.Prefix
	}
	return x.Namespace
}

func (b *binder) bindTops(parent *xmltree.Node) {
	_ = parent.Each(func(x *xmltree.Node) error {
		mod := moduleOf(x)
		if mod != "" && b.spec.FindModule(mod) == nil {
			b.fail(ncerr.UnknownNamespace(x.Name, mod,
				ncerr.WithMessage(fmt.Sprintf("no module %q for element %q", mod, x.Name))))
			return nil
		}
		sn := b.spec.FindTop(x.Name, mod)
		if sn == nil {
			msg := fmt.Sprintf("no top-level schema node for element %q", x.Name)
			if mod != "" {
				msg += " in module " + mod
			}
			b.fail(ncerr.UnknownElement(x.Name, ncerr.WithMessage(msg)))
			return nil
		}
		b.bind(x, sn)
		return nil
	}, xmltree.TypeElement)
}

func (b *binder) bind(x *xmltree.Node, sn *schema.Node) {
	x.Spec = sn
	b.bindChildren(x)
}

func (b *binder) bindChildren(x *xmltree.Node) {
	_ = x.Each(func(c *xmltree.Node) error {
		sn := x.Spec.Child(c.Name, moduleOf(c))
		if sn == nil {
			b.fail(ncerr.UnknownElement(c.Name, ncerr.WithPath(x.Spec.Path()),
				ncerr.WithMessage(fmt.Sprintf("no schema node for element %q in %s", c.Name, x.Spec.Path()))))
			return nil
		}
		b.bind(c, sn)
		return nil
	}, xmltree.TypeElement)
}

func (b *binder) fail(err *ncerr.Error) {
	glog.V(2).Infof("bind: %v", err)
	b.errs.Append(err)
}

// check reports bound lists lacking a key, key values left on nodes
// which are not lists or repeating a key leaf, and values on containers.
func (b *binder) check(top *xmltree.Node) {
	_ = xmltree.Walk(top, func(x *xmltree.Node) error {
		sn := x.Spec
		if sn == nil {
			return nil
		}
		var values []string
		_ = x.Each(func(c *xmltree.Node) error {
			if c.Role == xmltree.BodyPendingKey || sn.Keyword() == schema.KeywordContainer {
				values = append(values, c.Value)
			}
			return nil
		}, xmltree.TypeBody)

		var msg string
		switch sn.Keyword() {
		case schema.KeywordList:
			for _, k := range sn.Keys() {
				if x.FindElement(k) == nil {
					b.fail(ncerr.MissingElement(k, ncerr.WithPath(sn.Path()),
						ncerr.WithMessage(fmt.Sprintf("list %s entry has no key %q", sn.Path(), k))))
				}
			}
			msg = "list %s entry repeats key leaves as key values %s"
		case schema.KeywordContainer:
			msg = "container %s takes no value, got %s"
		default:
			msg = sn.Keyword().String() + " %s takes no key values, got %s"
		}
		if len(values) > 0 {
			b.fail(ncerr.BadElement(x.Name, ncerr.WithPath(sn.Path()),
				ncerr.WithMessage(fmt.Sprintf(msg, sn.Path(), strings.Join(values, " ")))))
		}
		return nil
	})
}
