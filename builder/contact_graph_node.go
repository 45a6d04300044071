package builder

import (
	"fmt"
	"virustrace/helper"
)

// Role marks how a computer relates to the query being drawn.
type Role int

func (r Role) String() string {
	switch r {
	case Bystander:
		return "Bystander"
	case Source:
		return "Source"
	case Target:
		return "Target"
	case Carrier:
		return "Carrier"
	}
	return "Unknown"
}

const (
	Bystander Role = iota
	Source
	Target
	Carrier // on the infection path between source and target
)

// role2Shape maps a role to a graphviz node shape
var role2Shape = map[Role]string{
	Bystander: "circle", Source: "doublecircle", Target: "doubleoctagon", Carrier: "circle",
}

// ComputerNode is a computer in the exported contact graph. The gonum id is
// the computer id itself.
type ComputerNode struct {
	id   int64
	role Role
}

// ID implements graph.Node
func (n ComputerNode) ID() int64 {
	return n.id
}

func (n ComputerNode) Role() Role {
	return n.role
}

func (n ComputerNode) VertexName() string {
	return helper.AddQuotation(fmt.Sprintf("%d", n.id))
}

func (n ComputerNode) VertexShape() string {
	return role2Shape[n.role]
}
