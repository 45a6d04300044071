package builder

import (
	"fmt"
	"gonum.org/v1/gonum/graph"
	"virustrace/helper"
)

type ContactLine struct {
	F, T     graph.Node
	Time     int64 // time of communication
	UID      int64 // parallel contacts between the same pair are told apart by UID
	Infected bool  // part of the reported infection path
}

// From To ReversedLine ID Weight implements the WeightedLine interface
func (l ContactLine) From() graph.Node { return l.F }

func (l ContactLine) To() graph.Node { return l.T }

func (l ContactLine) ReversedLine() graph.Line { l.F, l.T = l.T, l.F; return l }

func (l ContactLine) ID() int64 { return l.UID }

// Weight is the contact time.
func (l ContactLine) Weight() float64 { return float64(l.Time) }

func (l ContactLine) EdgeName() string {
	return helper.AddQuotation(fmt.Sprintf("t=%d", l.Time))
}
