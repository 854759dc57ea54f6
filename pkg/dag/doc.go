// Package dag provides a small directed acyclic graph with deterministic,
// insertion-ordered adjacency.
//
// # Overview
//
// kintree stores a family as a DAG: every person is a node and every
// parent→child relation is an edge. This package knows nothing about people;
// it only keeps nodes, edges and metadata, and offers the traversals the
// genealogy queries are built from.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "abe"})
//	g.AddNode(dag.Node{ID: "homer"})
//	g.AddEdge(dag.Edge{From: "abe", To: "homer"})
//
// Query the structure with [DAG.Children], [DAG.Parents], [DAG.Sources] and
// related methods. Use [DAG.Validate] to reject cyclic input once the graph
// is built.
//
// # Ordering
//
// [DAG.Nodes], [DAG.Edges], [DAG.Children] and [DAG.Parents] all return
// elements in insertion order. Traversal tie-breaks depend on this, so
// graphs built from the same input always traverse identically.
//
// # Traversal
//
//   - [DAG.PreOrder]: depth-first pre-order over child edges
//   - [DAG.Ancestors]: every node reachable over parent edges, with its
//     generation distance
//
// Both use explicit stacks or frontiers and visited sets, never recursion.
//
// # Concurrency
//
// DAG instances are not safe for concurrent mutation. Once a graph is fully
// built it is never modified, and any number of goroutines may read it.
package dag
