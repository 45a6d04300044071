package builder

import (
	"bytes"
	"fmt"
	"github.com/awalterschulze/gographviz"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"virustrace/logs"
)

func createDir(dirName string) error {
	if _, err := os.Stat(dirName); os.IsNotExist(err) {
		return os.MkdirAll(dirName, 0755)
	}
	return nil
}

// callSystem runs the given command and returns its combined output on failure
func callSystem(s string, args ...string) error {
	cmd := exec.Command(s, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", s, err, out.String())
	}
	return nil
}

// DotGraph renders the multigraph as graphviz source. Computers are emitted
// in id order so the output is stable.
func DotGraph(g *multi.WeightedDirectedGraph) (*gographviz.Graph, error) {
	graphAst, _ := gographviz.ParseString(`digraph G{}`)
	dot := gographviz.NewGraph()
	if err := gographviz.Analyse(graphAst, dot); err != nil {
		return nil, err
	}

	var nodes []ComputerNode
	it := g.Nodes()
	for it.Next() {
		nodes = append(nodes, it.Node().(ComputerNode))
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	count := 0 // lines are not counted by gonum
	for _, n := range nodes {
		attrs := map[string]string{"shape": n.VertexShape()}
		if n.Role() != Bystander {
			attrs["color"] = "red"
		}
		if err := dot.AddNode("G", n.VertexName(), attrs); err != nil {
			return nil, fmt.Errorf("add computer %d: %w", n.ID(), err)
		}
	}
	for _, n := range nodes {
		to := graph.NodesOf(g.From(n.ID()))
		sort.Slice(to, func(i, j int) bool { return to[i].ID() < to[j].ID() })
		for _, m := range to {
			lines := graph.WeightedLinesOf(g.WeightedLines(n.ID(), m.ID()))
			sort.Slice(lines, func(i, j int) bool { return lines[i].ID() < lines[j].ID() })
			for _, wl := range lines {
				l := wl.(ContactLine)
				attrs := map[string]string{"label": l.EdgeName()}
				if l.Infected {
					attrs["color"] = "red"
					attrs["penwidth"] = "2"
				}
				if err := dot.AddEdge(n.VertexName(), m.(ComputerNode).VertexName(), true, attrs); err != nil {
					logs.Logger.Warnf("failed to add edge to the graphviz, edge = [from: %d, to: %d]", n.ID(), m.ID())
					continue
				}
				count++
			}
		}
	}
	logs.Logger.Infof("Computers: %d, Contacts: %d", len(nodes), count)
	return dot, nil
}

// Visualize writes dir/filename.dot and returns its path.
func Visualize(g *multi.WeightedDirectedGraph, dir, filename string) (string, error) {
	dot, err := DotGraph(g)
	if err != nil {
		return "", err
	}
	if err := createDir(dir); err != nil {
		return "", err
	}
	dotName := filepath.Join(dir, filename+".dot")
	if err := os.WriteFile(dotName, []byte(dot.String()), 0666); err != nil {
		return "", err
	}
	return dotName, nil
}

// RenderSVG converts a dot file to svg with the graphviz dot binary.
func RenderSVG(dotName string) (string, error) {
	svgName := dotName[:len(dotName)-len(filepath.Ext(dotName))] + ".svg"
	return svgName, callSystem("dot", "-T", "svg", dotName, "-o", svgName)
}
