package graph

import (
	"errors"
	"fmt"
)

// ErrUnknownNode is matched by every UnknownNodeError.
var ErrUnknownNode = errors.New("unknown computer")

// UnknownNodeError reports a query endpoint that never appeared in any triple.
type UnknownNodeError struct {
	ID int64
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown computer %d", e.ID)
}

func (e *UnknownNodeError) Is(target error) bool {
	return target == ErrUnknownNode
}

// Query asks whether Target can be reached from Source using contacts with
// non-decreasing times inside [MinTime, MaxTime].
type Query struct {
	Source  int64 `json:"source"`
	MinTime int64 `json:"minTime"`
	Target  int64 `json:"target"`
	MaxTime int64 `json:"maxTime"`
}

// Hop is one step of an infection path: Node was reached at Time from Via.
type Hop struct {
	Node int64 `json:"node"`
	Time int64 `json:"time"`
	Via  int64 `json:"via"`
}

// Result is the outcome of a search. Hop and Path are only set when Found.
type Result struct {
	Found bool  `json:"found"`
	Hop   Hop   `json:"hop"`
	Path  []Hop `json:"path,omitempty"`
}

// Trace describes one expansion: contacts of Node are admissible in [Floor, Bound].
type Trace struct {
	Node  int64
	Floor int64
	Bound int64
}

// SearchOption configures a single Search call.
type SearchOption func(*searchConfig)

type searchConfig struct {
	tracer func(Trace)
}

// WithTracer registers fn to be called once per dequeued computer.
func WithTracer(fn func(Trace)) SearchOption {
	return func(c *searchConfig) {
		c.tracer = fn
	}
}

// visit is the per-query state of a reached computer.
type visit struct {
	arrived int64 // floor time for outgoing contacts
	via     int64
}

// Search runs a breadth-first traversal from q.Source that only follows
// contacts whose time is at or after the time the current computer was
// reached and no later than q.MaxTime. It stops at the first admissible
// contact into q.Target. The graph itself is not modified, so a built graph
// may be searched repeatedly and concurrently.
func (g *Graph) Search(q Query, opts ...SearchOption) (Result, error) {
	var cfg searchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	source, ok := g.index[q.Source]
	if !ok {
		return Result{}, &UnknownNodeError{ID: q.Source}
	}
	if _, ok := g.index[q.Target]; !ok {
		return Result{}, &UnknownNodeError{ID: q.Target}
	}

	visited := map[int64]visit{q.Source: {arrived: q.MinTime, via: q.Source}}
	queue := []*Node{source}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		floor := visited[cur.id].arrived // time never runs backwards along a path
		if cfg.tracer != nil {
			cfg.tracer(Trace{Node: cur.id, Floor: floor, Bound: q.MaxTime})
		}
		for _, e := range cur.edges {
			next, ok := g.index[e.To]
			if !ok {
				continue
			}
			if _, seen := visited[e.To]; seen {
				continue
			}
			if e.Time < floor || e.Time > q.MaxTime {
				continue
			}
			if e.To == q.Target {
				hop := Hop{Node: e.To, Time: e.Time, Via: cur.id}
				return Result{Found: true, Hop: hop, Path: walkBack(visited, q.Source, hop)}, nil
			}
			visited[e.To] = visit{arrived: e.Time, via: cur.id}
			queue = append(queue, next)
		}
	}
	return Result{}, nil
}

// walkBack rebuilds the hops from source to the terminal hop using the
// predecessor recorded for each reached computer.
func walkBack(visited map[int64]visit, source int64, last Hop) []Hop {
	path := []Hop{last}
	for id := last.Via; id != source; {
		v := visited[id]
		path = append(path, Hop{Node: id, Time: v.arrived, Via: v.via})
		id = v.via
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
