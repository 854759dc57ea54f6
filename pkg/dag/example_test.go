package dag_test

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/dag"
)

func ExampleDAG_basic() {
	// Three generations: abe → homer → bart
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "abe"})
	_ = g.AddNode(dag.Node{ID: "homer"})
	_ = g.AddNode(dag.Node{ID: "bart"})
	_ = g.AddEdge(dag.Edge{From: "abe", To: "homer"})
	_ = g.AddEdge(dag.Edge{From: "homer", To: "bart"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Valid:", g.Validate() == nil)
	// Output:
	// Nodes: 3
	// Edges: 2
	// Valid: true
}

func ExampleDAG_traversal() {
	// homer has two children, added bart first
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "homer"})
	_ = g.AddNode(dag.Node{ID: "bart"})
	_ = g.AddNode(dag.Node{ID: "lisa"})
	_ = g.AddEdge(dag.Edge{From: "homer", To: "bart"})
	_ = g.AddEdge(dag.Edge{From: "homer", To: "lisa"})

	fmt.Println("Children of homer:", g.Children("homer"))
	fmt.Println("Parents of lisa:", g.Parents("lisa"))
	fmt.Println("Pre-order from homer:", g.PreOrder("homer"))
	// Output:
	// Children of homer: [bart lisa]
	// Parents of lisa: [homer]
	// Pre-order from homer: [homer bart lisa]
}

func ExampleDAG_Ancestors() {
	g := dag.New(nil)
	for _, id := range []string{"abe", "mona", "homer", "bart"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "abe", To: "homer"})
	_ = g.AddEdge(dag.Edge{From: "mona", To: "homer"})
	_ = g.AddEdge(dag.Edge{From: "homer", To: "bart"})

	anc := g.Ancestors("bart")
	fmt.Println("homer:", anc["homer"])
	fmt.Println("abe:", anc["abe"])
	fmt.Println("mona:", anc["mona"])
	// Output:
	// homer: 1
	// abe: 2
	// mona: 2
}
