package bind

import (
	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/xmltree"
	"github.com/pkg/errors"
)

// ErrKeyMismatch is returned when a list entry has more positional key
// values than its list declares keys
var ErrKeyMismatch = errors.New("text parser, key and body mismatch")

// Keys materializes positional list keys beneath x. For every element
// bound to a list, each body child is moved into a new key element named
// after the next unconsumed key, in declared key order, and the entry is
// sorted. A list has no text content, so any body of a list entry is a
// key value. A value for a key the entry already has as a child element
// is left in place as a pending key, which Tree reports as a bad-element.
func Keys(x *xmltree.Node) error {
	if sn := x.Spec; sn != nil && sn.Keyword() == schema.KeywordList {
		var bodies []*xmltree.Node
		_ = x.Each(func(c *xmltree.Node) error {
			bodies = append(bodies, c)
			return nil
		}, xmltree.TypeBody)
		keys := sn.Keys()
		if len(bodies) > len(keys) {
			return errors.Wrapf(ErrKeyMismatch, "%s has %d keys, got %d values", sn.Path(), len(keys), len(bodies))
		}
		moved := 0
		for i, body := range bodies {
			if x.FindElement(keys[i]) != nil {
				body.Role = xmltree.BodyPendingKey
				continue
			}
			k := xmltree.NewElement(keys[i])
			k.Spec = sn.Child(keys[i], "")
			body.Role = xmltree.BodyOrdinary
			if err := k.AddChild(body); err != nil {
				return err
			}
			if err := x.AddChild(k); err != nil {
				return err
			}
			moved++
		}
		if moved > 0 {
			Sort(x)
		}
	}
	return x.Each(Keys, xmltree.TypeElement)
}
