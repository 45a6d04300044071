package builder

import (
	"gonum.org/v1/gonum/graph/multi"
	"virustrace/graph"
	"virustrace/logs"
)

type hopKey struct {
	from, to, time int64
}

// Export copies the contact graph into a gonum weighted multigraph. When res
// is a found result, the query endpoints and the infection path are marked.
func Export(g *graph.Graph, q *graph.Query, res *graph.Result) *multi.WeightedDirectedGraph {
	roles := make(map[int64]Role)
	onPath := make(map[hopKey]bool)
	if res != nil && res.Found {
		for _, hop := range res.Path {
			roles[hop.Node] = Carrier
			roles[hop.Via] = Carrier
			onPath[hopKey{hop.Via, hop.Node, hop.Time}] = true
		}
	}
	if q != nil {
		roles[q.Source] = Source
		roles[q.Target] = Target
	}

	mg := multi.NewWeightedDirectedGraph()
	for _, n := range g.Nodes() {
		mg.AddNode(ComputerNode{id: n.ID(), role: roles[n.ID()]})
	}
	for _, n := range g.Nodes() {
		for _, e := range n.Edges() {
			AddContactLine(mg, n.ID(), e.To, e.Time, onPath[hopKey{n.ID(), e.To, e.Time}])
		}
	}
	logs.Logger.Debugf("exported %d computers and %d contacts", g.Len(), g.EdgeCount())
	return mg
}

// AddContactLine adds one directed contact between two computers already in mg.
func AddContactLine(mg *multi.WeightedDirectedGraph, from, to, t int64, infected bool) {
	weightedLine := mg.NewWeightedLine(mg.Node(from), mg.Node(to), float64(t))
	mg.SetWeightedLine(ContactLine{
		F:        mg.Node(from),
		T:        mg.Node(to),
		Time:     t,
		UID:      weightedLine.ID(),
		Infected: infected,
	})
}
