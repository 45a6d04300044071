package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"virustrace/graph"
	"virustrace/logs"
)

// ErrMalformedInput is wrapped by every error caused by the shape of the input.
var ErrMalformedInput = errors.New("malformed input")

// Input is a whole problem instance: the contact batch plus one query.
type Input struct {
	Computers   int
	Connections int
	Triples     []graph.Triple
	Query       graph.Query
}

// Build inserts the triples into a new graph in input order.
func (in *Input) Build() *graph.Graph {
	return graph.Build(in.Computers, in.Triples)
}

const maxPresize = 1 << 16

// tokens reads whitespace separated integers and remembers its position.
type tokens struct {
	s   *bufio.Scanner
	pos int
}

func (t *tokens) next(what string) (int64, error) {
	if !t.s.Scan() {
		if err := t.s.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: missing %s at token %d", ErrMalformedInput, what, t.pos+1)
	}
	t.pos++
	v, err := strconv.ParseInt(t.s.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s %q at token %d", ErrMalformedInput, what, t.s.Text(), t.pos)
	}
	return v, nil
}

// Parse reads "computers connections", then that many "c1 c2 t" triples, then
// the query "source minTime target maxTime".
func Parse(r io.Reader) (*Input, error) {
	s := bufio.NewScanner(bufio.NewReader(r))
	s.Split(bufio.ScanWords)
	t := &tokens{s: s}

	computers, err := t.next("computer count")
	if err != nil {
		return nil, err
	}
	connections, err := t.next("connection count")
	if err != nil {
		return nil, err
	}
	if connections < 0 {
		return nil, fmt.Errorf("%w: negative connection count %d", ErrMalformedInput, connections)
	}
	// the declared count is only trusted up to what the input actually holds
	in := &Input{
		Computers:   int(computers),
		Connections: int(connections),
		Triples:     make([]graph.Triple, 0, min(connections, maxPresize)),
	}
	for i := int64(0); i < connections; i++ {
		var tr graph.Triple
		if tr.C1, err = t.next("computer"); err != nil {
			return nil, err
		}
		if tr.C2, err = t.next("computer"); err != nil {
			return nil, err
		}
		if tr.Time, err = t.next("time"); err != nil {
			return nil, err
		}
		in.Triples = append(in.Triples, tr)
	}
	for _, f := range []struct {
		name string
		dst  *int64
	}{
		{"source", &in.Query.Source},
		{"min time", &in.Query.MinTime},
		{"target", &in.Query.Target},
		{"max time", &in.Query.MaxTime},
	} {
		if *f.dst, err = t.next(f.name); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// ParseFile opens name and parses it.
func ParseFile(name string) (*Input, error) {
	f, err := os.Open(name)
	if err != nil {
		logs.Logger.WithError(err).Errorf("Open file %s failed", name)
		return nil, err
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	logs.Logger.Infof("parsed %s: %d computers, %d connections", name, in.Computers, len(in.Triples))
	return in, nil
}
