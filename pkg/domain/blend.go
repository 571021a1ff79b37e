package domain

import (
	"fmt"
	"sort"
)

// AxisKind selects how an axis combines its children.
type AxisKind string

const (
	// AxisSimple1D interpolates linearly between adjacent thresholds and
	// clamps outside the first and last threshold.
	AxisSimple1D AxisKind = "simple1d"
	// AxisDirect adds every child weighted by its own weight parameter.
	AxisDirect AxisKind = "direct"
)

// BlendNode is either a leaf (Clip set) or an axis (Axis set).
type BlendNode struct {
	Name string `json:"name,omitempty"`
	Clip string `json:"clip,omitempty"`
	Axis *Axis  `json:"axis,omitempty"`
}

// Axis is a decision node keyed by one parameter.
type Axis struct {
	Param    string   `json:"param"`
	Kind     AxisKind `json:"kind"`
	Children []Child  `json:"children"`
}

// Child is one ordered entry of an axis.
// Simple1D children use Threshold, Direct children use Weight.
type Child struct {
	Threshold float64    `json:"threshold"`
	Weight    string     `json:"weight,omitempty"`
	Node      *BlendNode `json:"node"`
}

// Leaf wraps a clip as a terminal node.
func Leaf(clip *Clip) *BlendNode {
	return &BlendNode{Name: clip.Name, Clip: clip.ID}
}

// Simple1D creates an empty interpolating axis over p.
func Simple1D(name string, p FloatParam) *BlendNode {
	return &BlendNode{Name: name, Axis: &Axis{Param: p.Name(), Kind: AxisSimple1D}}
}

// Direct creates an empty additive axis.
func Direct(name string) *BlendNode {
	return &BlendNode{Name: name, Axis: &Axis{Kind: AxisDirect}}
}

// IsLeaf reports whether the node holds a clip.
func (n *BlendNode) IsLeaf() bool {
	return n.Axis == nil
}

// With appends a child at threshold and returns n for chaining.
func (n *BlendNode) With(child *BlendNode, threshold float64) *BlendNode {
	n.Axis.Children = append(n.Axis.Children, Child{Threshold: threshold, Node: child})
	return n
}

// WithClip appends a clip leaf at threshold.
func (n *BlendNode) WithClip(clip *Clip, threshold float64) *BlendNode {
	return n.With(Leaf(clip), threshold)
}

// WithWeighted appends a child to a Direct axis, weighted by p.
func (n *BlendNode) WithWeighted(child *BlendNode, p FloatParam) *BlendNode {
	n.Axis.Children = append(n.Axis.Children, Child{Weight: p.Name(), Node: child})
	return n
}

// Normalize sorts every Simple1D axis by threshold (stable) and checks that
// thresholds are strictly ascending. It walks the whole subtree.
func (n *BlendNode) Normalize() error {
	if n.IsLeaf() {
		return nil
	}
	if n.Axis.Kind == AxisSimple1D {
		sort.SliceStable(n.Axis.Children, func(i, j int) bool {
			return n.Axis.Children[i].Threshold < n.Axis.Children[j].Threshold
		})
		for i := 1; i < len(n.Axis.Children); i++ {
			if n.Axis.Children[i].Threshold <= n.Axis.Children[i-1].Threshold {
				return fmt.Errorf("%w: %q has %g twice", ErrThresholdOrder, n.Name, n.Axis.Children[i].Threshold)
			}
		}
	}
	for _, c := range n.Axis.Children {
		if err := c.Node.Normalize(); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the clip IDs of every leaf position, depth first.
// Shared clips appear once per position.
func (n *BlendNode) Leaves() []string {
	if n.IsLeaf() {
		return []string{n.Clip}
	}
	var out []string
	for _, c := range n.Axis.Children {
		out = append(out, c.Node.Leaves()...)
	}
	return out
}

// Params lists the parameters the subtree reads, in order of appearance.
func (n *BlendNode) Params() []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(*BlendNode)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	walk = func(node *BlendNode) {
		if node.IsLeaf() {
			return
		}
		add(node.Axis.Param)
		for _, c := range node.Axis.Children {
			add(c.Weight)
			walk(c.Node)
		}
	}
	walk(n)
	return names
}
