// Package family is the genealogy graph store.
//
// A [Tree] holds [Person] nodes and parent→child edges tagged with a [Role]
// (father or mother) on top of a [dag.DAG]. Trees are loaded once, usually
// by package dataset, and are immutable afterwards; there are no removal
// operations.
//
//	t := family.NewTree()
//	t.AddPerson(family.Person{ID: "33333333C", Name: "Abraham", Surname: "Simpson"})
//	t.AddPerson(family.Person{ID: "11111111A", Name: "Homer", Surname: "Simpson"})
//	t.AddParentEdge("33333333C", "11111111A", family.RoleFather)
//
// A [Directory] maps display names to identifiers for user-facing lookups.
//
// [dag.DAG]: github.com/matzehuels/kintree/pkg/dag.DAG
package family
