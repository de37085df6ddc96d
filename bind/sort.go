package bind

import (
	"strconv"
	"strings"

	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/xmltree"
)

// Sort stably sorts the children of x into canonical order: attributes,
// bodies, bound elements in schema order, then unbound elements.
// Entries of a system ordered list sort by key values and members of a
// system ordered leaf-list by value; user ordered entries keep their
// order.
func Sort(x *xmltree.Node) { x.SortChildren(Less) }

// SortTree sorts x and every element beneath it
func SortTree(x *xmltree.Node) {
	_ = xmltree.Walk(x, func(n *xmltree.Node) error {
		Sort(n)
		return nil
	})
}

func rank(n *xmltree.Node) int {
	switch {
	case n.Type == xmltree.TypeAttribute:
		return 0
	case n.Type == xmltree.TypeBody:
		return 1
	case n.Spec != nil:
		return 2
	}
	return 3
}

// Less is the canonical sibling order
func Less(a, b *xmltree.Node) bool { return Compare(a, b) < 0 }

// Compare returns the canonical order of siblings a and b as -1, 0 or +1
func Compare(a, b *xmltree.Node) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return compareInt(ra, rb)
	}
	if ra != 2 {
		return 0
	}
	if a.Spec != b.Spec {
		return schema.Order(a.Spec, b.Spec)
	}
	sn := a.Spec
	if sn.UserOrdered() {
		return 0
	}
	switch sn.Keyword() {
	case schema.KeywordList:
		for _, k := range sn.Keys() {
			if c := compareValues(keyValue(a, k), keyValue(b, k)); c != 0 {
				return c
			}
		}
	case schema.KeywordLeafList:
		return compareValues(a.Body(), b.Body())
	}
	return 0
}

func keyValue(entry *xmltree.Node, key string) string {
	if k := entry.FindElement(key); k != nil {
		return k.Body()
	}
	return ""
}

// compareValues compares numerically when both values are integers
func compareValues(a, b string) int {
	ia, errA := strconv.ParseInt(a, 10, 64)
	ib, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return compareInt64(ia, ib)
	}
	return strings.Compare(a, b)
}

func compareInt(a, b int) int { return compareInt64(int64(a), int64(b)) }

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
