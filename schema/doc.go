// Package schema provides the read-only YANG schema model used to bind
// and encode data trees.
//
// A Spec holds the loaded modules and their top-level data nodes. Each
// schema Node reports its keyword, name, owning module and parent, and,
// for lists, the ordered key leaf names. Nodes are shared by every tree
// bound against the Spec and are never modified once the Spec is built.
//
// Loading
//
// Specs are usually loaded from YANG sources with LoadYANG or ParseYANG,
// which compile modules with the goyang library and convert the
// resulting entry tree, keeping YANG declaration order as the canonical
// sibling order. Specs may also be built directly:
//
//	spec := schema.NewSpec()
//	ex := spec.AddModule("ex", "ex", "urn:example")
//	sys := ex.Container("system")
//	sys.Leaf("hostname")
//	sys.List("interface", "name").Leaf("name")
//	err := spec.Validate()
//
// Lookup
//
// Child and FindTop resolve a data node by name, optionally restricted
// to a module given by name, YANG prefix or XML namespace. Choice and
// case nodes are transparent to lookup, as they have no data instance.
package schema
