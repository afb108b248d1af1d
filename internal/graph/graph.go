// Package graph builds relationship graphs from parent/child/quantity rows.
//
// The graph is emitted as a Graphviz DOT document; layout is left to
// Graphviz or any DOT-aware viewer.
package graph

import (
	"strings"

	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	"github.com/emicklei/dot"
)

// Columns names the parent, child and quantity columns of a table
type Columns struct {
	Parent   string `yaml:"parent" json:"parent" validate:"required_with=Child Quantity"`
	Child    string `yaml:"child" json:"child" validate:"required_with=Parent Quantity"`
	Quantity string `yaml:"quantity" json:"quantity" validate:"required_with=Parent Child"`
}

// Enabled reports whether all three columns are configured
func (c Columns) Enabled() bool {
	return c.Parent != "" && c.Child != "" && c.Quantity != ""
}

// Edge is a directed parent -> child relationship
type Edge struct {
	Parent   string
	Child    string
	Quantity string
}

// Graph is a directed graph with nodes in first-appearance order
type Graph struct {
	Nodes []string
	Edges []Edge
}

// Build extracts a graph from the table. ok is false when any of the
// configured columns is missing.
func Build(t *table.Table, cols Columns) (g *Graph, ok bool) {
	if !cols.Enabled() || !t.HasColumns(cols.Parent, cols.Child, cols.Quantity) {
		return nil, false
	}

	pi := t.ColumnIndex(cols.Parent)
	ci := t.ColumnIndex(cols.Child)
	qi := t.ColumnIndex(cols.Quantity)

	g = &Graph{}
	seen := make(map[string]bool)
	addNode := func(name string) {
		if !seen[name] {
			seen[name] = true
			g.Nodes = append(g.Nodes, name)
		}
	}

	for _, row := range t.Rows {
		parent := strings.TrimSpace(row[pi])
		child := strings.TrimSpace(row[ci])
		if parent == "" || child == "" {
			continue
		}
		addNode(parent)
		addNode(child)
		g.Edges = append(g.Edges, Edge{
			Parent:   parent,
			Child:    child,
			Quantity: strings.TrimSpace(row[qi]),
		})
	}

	return g, true
}

// DOT renders the graph as a Graphviz digraph
func (g *Graph) DOT(name string) string {
	d := dot.NewGraph(dot.Directed)
	d.ID(name)
	d.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n] = d.Node(n).Attr("shape", "box")
	}
	for _, e := range g.Edges {
		if e.Quantity == "" {
			d.Edge(nodes[e.Parent], nodes[e.Child])
			continue
		}
		d.Edge(nodes[e.Parent], nodes[e.Child], e.Quantity)
	}

	return d.String()
}
