package family

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/matzehuels/kintree/pkg/dag"
)

var (
	// ErrInvalidPerson is returned by [Tree.AddPerson] when the person has
	// no identifier.
	ErrInvalidPerson = errors.New("person ID must not be empty")

	// ErrDuplicatePerson is returned by [Tree.AddPerson] when a person with
	// the same identifier already exists.
	ErrDuplicatePerson = errors.New("duplicate person ID")

	// ErrUnknownPerson is returned by [Tree.AddParentEdge] when either end
	// of the relation is not in the tree.
	ErrUnknownPerson = errors.New("unknown person")

	// ErrInvalidRole is returned by [Tree.AddParentEdge] for roles other
	// than [RoleFather] and [RoleMother].
	ErrInvalidRole = errors.New("role must be father or mother")

	// ErrCycle is returned by [Tree.Validate] when someone is their own
	// ancestor.
	ErrCycle = errors.New("family graph contains a cycle")
)

// Role tags a parentage edge.
type Role string

const (
	RoleFather Role = "father"
	RoleMother Role = "mother"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleFather || r == RoleMother }

// Person is a member of the family. ID is the primary key.
type Person struct {
	ID        string
	Name      string
	Surname   string
	BirthDate time.Time // zero when unknown
	Photo     string    // path to an image, empty when none
}

// FullName returns "Name Surname", or just Name when the surname is empty.
func (p Person) FullName() string {
	if p.Surname == "" {
		return p.Name
	}
	return p.Name + " " + p.Surname
}

// Relation is a parent→child edge with its role.
type Relation struct {
	Parent string
	Child  string
	Role   Role
}

// Metadata keys used on the underlying DAG.
const (
	metaPerson  = "person"
	metaRole    = "role"
	metaBaseDir = "base_dir"
)

// Tree stores people and parentage edges as a DAG. It is built once and only
// read afterwards.
//
// The zero value is not usable - use NewTree.
type Tree struct {
	g *dag.DAG
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{g: dag.New(nil)}
}

// Graph exposes the underlying DAG for read-only use (rendering, hashing).
func (t *Tree) Graph() *dag.DAG { return t.g }

// SetBaseDir records the directory that relative photo paths are resolved
// against, normally the directory of the dataset file.
func (t *Tree) SetBaseDir(dir string) { t.g.Meta()[metaBaseDir] = dir }

// BaseDir returns the directory set with SetBaseDir, or "".
func (t *Tree) BaseDir() string {
	dir, _ := t.g.Meta()[metaBaseDir].(string)
	return dir
}

// PhotoPath returns p's photo resolved against BaseDir, or "" if p has no
// photo.
func (t *Tree) PhotoPath(p Person) string {
	if p.Photo == "" {
		return ""
	}
	if filepath.IsAbs(p.Photo) {
		return p.Photo
	}
	return filepath.Join(t.BaseDir(), p.Photo)
}

// AddPerson inserts p. It fails with ErrInvalidPerson if p.ID is empty and
// with ErrDuplicatePerson if the identifier already exists.
func (t *Tree) AddPerson(p Person) error {
	err := t.g.AddNode(dag.Node{ID: p.ID, Meta: dag.Metadata{metaPerson: p}})
	switch {
	case errors.Is(err, dag.ErrInvalidNodeID):
		return ErrInvalidPerson
	case errors.Is(err, dag.ErrDuplicateNodeID):
		return fmt.Errorf("%w: %s", ErrDuplicatePerson, p.ID)
	}
	return err
}

// AddParentEdge records that parentID is the role-parent of childID.
// Both people must already exist.
//
// At most one father and one mother per child is assumed but not enforced;
// the dataset loader guarantees it by construction.
func (t *Tree) AddParentEdge(parentID, childID string, role Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if _, ok := t.g.Node(parentID); !ok {
		return fmt.Errorf("%w: parent %s", ErrUnknownPerson, parentID)
	}
	if _, ok := t.g.Node(childID); !ok {
		return fmt.Errorf("%w: child %s", ErrUnknownPerson, childID)
	}
	return t.g.AddEdge(dag.Edge{From: parentID, To: childID, Meta: dag.Metadata{metaRole: role}})
}

// Validate returns ErrCycle if the graph is not acyclic.
func (t *Tree) Validate() error {
	if err := t.g.Validate(); err != nil {
		if errors.Is(err, dag.ErrGraphHasCycle) {
			return ErrCycle
		}
		return err
	}
	return nil
}

// Person returns the person with the given ID.
func (t *Tree) Person(id string) (Person, bool) {
	n, ok := t.g.Node(id)
	if !ok {
		return Person{}, false
	}
	return personOf(n), true
}

// People returns everyone in insertion order.
func (t *Tree) People() []Person {
	nodes := t.g.Nodes()
	people := make([]Person, len(nodes))
	for i, n := range nodes {
		people[i] = personOf(n)
	}
	return people
}

// Lookup maps IDs to people, skipping IDs that are not in the tree.
func (t *Tree) Lookup(ids []string) []Person {
	people := make([]Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := t.Person(id); ok {
			people = append(people, p)
		}
	}
	return people
}

// Parents returns the parents of id in edge insertion order.
func (t *Tree) Parents(id string) []Person { return t.Lookup(t.g.Parents(id)) }

// Children returns the children of id in edge insertion order.
func (t *Tree) Children(id string) []Person { return t.Lookup(t.g.Children(id)) }

// Father returns the father of id, if recorded.
func (t *Tree) Father(id string) (Person, bool) { return t.parentWithRole(id, RoleFather) }

// Mother returns the mother of id, if recorded.
func (t *Tree) Mother(id string) (Person, bool) { return t.parentWithRole(id, RoleMother) }

func (t *Tree) parentWithRole(id string, role Role) (Person, bool) {
	for _, pid := range t.g.Parents(id) {
		if e, ok := t.g.Edge(pid, id); ok && roleOf(e) == role {
			return t.Person(pid)
		}
	}
	return Person{}, false
}

// Relations returns all parentage edges in insertion order.
func (t *Tree) Relations() []Relation {
	edges := t.g.Edges()
	rels := make([]Relation, len(edges))
	for i, e := range edges {
		rels[i] = Relation{Parent: e.From, Child: e.To, Role: roleOf(e)}
	}
	return rels
}

// Len returns the number of people.
func (t *Tree) Len() int { return t.g.NodeCount() }

// EdgeCount returns the number of parentage edges.
func (t *Tree) EdgeCount() int { return t.g.EdgeCount() }

func personOf(n *dag.Node) Person {
	if p, ok := n.Meta[metaPerson].(Person); ok {
		return p
	}
	return Person{ID: n.ID}
}

func roleOf(e dag.Edge) Role {
	r, _ := e.Meta[metaRole].(Role)
	return r
}
