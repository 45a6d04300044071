package graph

// Edge is a directed, timestamped contact stored on its source computer.
type Edge struct {
	To   int64 // id of the adjacent computer
	Time int64 // time of communication
}

// Node is a computer on the network together with its outgoing contacts.
type Node struct {
	id    int64
	edges []Edge
}

func newNode(id, to, t int64) *Node {
	n := &Node{id: id}
	n.addEdge(to, t)
	return n
}

func (n *Node) addEdge(to, t int64) {
	n.edges = append(n.edges, Edge{To: to, Time: t})
}

// ID returns the external computer id.
func (n *Node) ID() int64 {
	return n.id
}

// Edges returns the outgoing contacts in the order they were inserted.
func (n *Node) Edges() []Edge {
	return n.edges
}

// Triple is one communication: computers C1 and C2 talked at Time.
type Triple struct {
	C1   int64 `json:"src"`
	C2   int64 `json:"dst"`
	Time int64 `json:"time"`
}

// Graph is a temporal contact graph built once from a batch of triples.
type Graph struct {
	nodes       []*Node         // insertion order
	index       map[int64]*Node // computer id -> node
	computers   int             // sizing hint
	connections int             // sizing hint
	edgeCount   int
}

// maxPresize caps how much a declared computer count may preallocate.
const maxPresize = 1 << 16

// New returns an empty graph. computers and connections are sizing hints only
// and are reported back by Hint as declared.
func New(computers, connections int) *Graph {
	presize := computers
	if presize < 0 {
		presize = 0
	} else if presize > maxPresize {
		presize = maxPresize
	}
	return &Graph{
		nodes:       make([]*Node, 0, presize),
		index:       make(map[int64]*Node, presize),
		computers:   computers,
		connections: connections,
	}
}

// Insert records the bidirectional communication (c1, c2, t). Duplicates and
// self-loops are stored as given.
func (g *Graph) Insert(c1, c2, t int64) {
	n1, ok1 := g.index[c1]
	n2, ok2 := g.index[c2]
	switch {
	case ok1 && ok2:
		n1.addEdge(c2, t)
		n2.addEdge(c1, t)
	case ok1:
		n1.addEdge(c2, t)
		g.register(newNode(c2, c1, t))
	case ok2:
		n2.addEdge(c1, t)
		g.register(newNode(c1, c2, t))
	default:
		g.register(newNode(c1, c2, t))
		if c1 == c2 {
			// a fresh self-loop still stores both directions on the one node
			g.index[c1].addEdge(c1, t)
		} else {
			g.register(newNode(c2, c1, t))
		}
	}
	g.edgeCount += 2
}

// Build inserts triples into a new graph in order.
func Build(computers int, triples []Triple) *Graph {
	g := New(computers, len(triples))
	for _, t := range triples {
		g.Insert(t.C1, t.C2, t.Time)
	}
	return g
}

func (g *Graph) register(n *Node) {
	g.nodes = append(g.nodes, n)
	g.index[n.id] = n
}

// Node looks up a computer by id.
func (g *Graph) Node(id int64) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns every computer in the order it first appeared.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Len returns the number of computers.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of directed edges, two per inserted triple.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Hint returns the sizes the graph was declared with.
func (g *Graph) Hint() (computers, connections int) {
	return g.computers, g.connections
}
