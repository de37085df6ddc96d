// Package changelog reads YANG module revision changelogs and selects
// the changes recorded for a loaded module revision.
//
// A changelog is an XML document of module entries:
//
//	<yang-modules>
//	  <module>
//	    <name>example</name>
//	    <revision>2024-02-01</revision>
//	    <revision-change-log>
//	      <index>0001</index>
//	      <change-operation>create</change-operation>
//	      <data-definition>
//	        <target-node>/ex:system/ex:y</target-node>
//	      </data-definition>
//	    </revision-change-log>
//	  </module>
//	</yang-modules>
package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andaru/yangtext/schema"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Changelog is a parsed changelog document
type Changelog struct {
	doc *xmlquery.Node
}

// ModuleRef names a module revision with changelog entries
type ModuleRef struct {
	Name     string
	Revision string
}

// Change is one revision-change-log entry
type Change struct {
	Index     string
	Operation string
	Target    string
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s %s", c.Index, c.Operation, c.Target)
}

var moduleExpr = xpath.MustCompile("/*/module")

// Load parses a changelog. Every module entry must have a name and a
// revision.
func Load(r io.Reader) (*Changelog, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "changelog")
	}
	c := &Changelog{doc: doc}
	for i, m := range xmlquery.QuerySelectorAll(doc, moduleExpr) {
		if text(m, "name") == "" {
			return nil, errors.Errorf("changelog module entry %d has no name", i+1)
		}
		if text(m, "revision") == "" {
			return nil, errors.Errorf("changelog module %q has no revision", text(m, "name"))
		}
	}
	return c, nil
}

// LoadFile parses the changelog file at path
func LoadFile(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return Load(f)
}

func text(n *xmlquery.Node, child string) string {
	if c := n.SelectElement(child); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}

// Modules returns the module revisions in document order
func (c *Changelog) Modules() []ModuleRef {
	var refs []ModuleRef
	for _, m := range xmlquery.QuerySelectorAll(c.doc, moduleExpr) {
		refs = append(refs, ModuleRef{Name: text(m, "name"), Revision: text(m, "revision")})
	}
	return refs
}

// Entries returns the changes logged for the module revision
func (c *Changelog) Entries(module, revision string) ([]Change, error) {
	if strings.ContainsAny(module+revision, `"`) {
		return nil, errors.Errorf("changelog: invalid module %q revision %q", module, revision)
	}
	expr, err := xpath.Compile(fmt.Sprintf(
		`/*/module[name="%s" and revision="%s"]/revision-change-log`, module, revision))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var changes []Change
	for _, n := range xmlquery.QuerySelectorAll(c.doc, expr) {
		change := Change{Index: text(n, "index"), Operation: text(n, "change-operation")}
		if dd := n.SelectElement("data-definition"); dd != nil {
			change.Target = text(dd, "target-node")
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// Upgrade returns the changes to apply to data of module m at its loaded
// revision. When disabled it succeeds without changes. Applying the
// changes to stored data is left to the caller.
func (c *Changelog) Upgrade(m *schema.Module, enabled bool) ([]Change, error) {
	if !enabled || c == nil {
		return nil, nil
	}
	if m == nil {
		return nil, errors.New("changelog: upgrade of nil module")
	}
	changes, err := c.Entries(m.Name, m.Revision)
	if err != nil {
		return nil, err
	}
	for _, ch := range changes {
		glog.V(1).Infof("changelog: %s@%s: %s", m.Name, m.Revision, ch)
	}
	return changes, nil
}
