package planner

import "github.com/sampleplan/planning/space"

// noParent marks a tree node with no parent (the tree's root).
const noParent = -1

// node is a planner tree node (C8/C9/C10 internal): a configuration, a
// parent index (or noParent at a root), and an accumulated cost-to-come
// used only by RRT*. Grounded on spec.md §3 "Planner tree node" and the
// teacher's node/basicNode/costNode family (cBiRRT.go's node interface,
// AdamMagaluk-rdk's costNode), but represented as a contiguous slice of
// structs with an integer parent index rather than the teacher's
// map[node]node, per spec.md §9's "indexed trees, not pointer graphs"
// design note.
type node struct {
	configuration space.Configuration
	parent        int
	cost          float64
}

// tree is an indexed forest: nodes are appended monotonically, and a
// node's index never changes once assigned (spec.md §5 "Node indices are
// assigned monotonically and remain stable").
type tree struct {
	nodes []node
}

func newTree(root space.Configuration) *tree {
	return &tree{nodes: []node{{configuration: root, parent: noParent, cost: 0}}}
}

// add appends a new node with the given parent index and cost, returning
// its own index.
func (t *tree) add(cfg space.Configuration, parent int, cost float64) int {
	t.nodes = append(t.nodes, node{configuration: cfg, parent: parent, cost: cost})
	return len(t.nodes) - 1
}

func (t *tree) len() int { return len(t.nodes) }

func (t *tree) configuration(i int) space.Configuration { return t.nodes[i].configuration }

func (t *tree) cost(i int) float64 { return t.nodes[i].cost }

func (t *tree) setParent(i, parent int, cost float64) {
	t.nodes[i].parent = parent
	t.nodes[i].cost = cost
}

// pathTo walks the parent chain from index i up to the root, returning
// configurations in root-to-i order (the teacher's extractPath does the
// equivalent walk-then-reverse in cBiRRT.go).
func (t *tree) pathTo(i int) []space.Configuration {
	var reversed []space.Configuration
	for idx := i; idx != noParent; idx = t.nodes[idx].parent {
		reversed = append(reversed, t.nodes[idx].configuration)
	}
	out := make([]space.Configuration, len(reversed))
	for i, cfg := range reversed {
		out[len(out)-1-i] = cfg
	}
	return out
}

// children returns every node index whose parent is i, used only by the
// optional RRT* cost-propagation cascade.
func (t *tree) children(i int) []int {
	var out []int
	for idx, n := range t.nodes {
		if n.parent == i {
			out = append(out, idx)
		}
	}
	return out
}
