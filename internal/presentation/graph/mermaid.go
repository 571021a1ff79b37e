package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/animgraph/pkg/domain"
)

// Overlay contains dry-run data to visualize on a layer.
type Overlay struct {
	VisitedStates []string
	CurrentState  string
}

const anyStateID = "any"

// LayerMermaid produces a Mermaid flowchart of a layer's state machine.
// It applies semantic styling:
// - Entry: ((Circle))
// - States with drivers: [[Subroutine]]
// - States with a blend tree: [/Parallelogram/]
// - Default: [Rectangle]
// Any-state transitions start from a shared hexagon.
func LayerMermaid(l *domain.Layer, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[string]string, len(l.States))
	for i, s := range l.States {
		ids[s.Name] = fmt.Sprintf("s%d", i)
	}

	for _, s := range l.States {
		opener, closer := "[", "]"
		switch {
		case s.Name == l.Entry:
			opener, closer = "((", "))"
		case len(s.Drivers) > 0:
			opener, closer = "[[", "]]"
		case s.Motion != nil:
			opener, closer = "[/", "/]"
		}
		label := escapeLabel(s.Name)
		if writes := countWrites(s); writes > 0 {
			label = fmt.Sprintf("%s <br/> %d writes", label, writes)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s.Name], opener, label, closer)
	}

	for _, s := range l.States {
		for _, t := range s.Transitions {
			writeEdge(&sb, ids[s.Name], target(l, ids, t), t, false)
		}
	}

	if len(l.Any) > 0 {
		fmt.Fprintf(&sb, "    %s{{\"Any State\"}}\n", anyStateID)
		for _, t := range l.Any {
			writeEdge(&sb, anyStateID, target(l, ids, t), t, true)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.VisitedStates {
			id, ok := ids[name]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}
		if id, ok := ids[overlay.CurrentState]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}
	return sb.String()
}

func target(l *domain.Layer, ids map[string]string, t domain.Transition) string {
	if t.Exit {
		return ids[l.Entry]
	}
	if id, ok := ids[t.Target]; ok {
		return id
	}
	// Dangling targets still render so the problem is visible.
	return "missing_" + sanitize(t.Target)
}

func writeEdge(sb *strings.Builder, from, to string, t domain.Transition, dotted bool) {
	guard := t.Guard.String()
	switch {
	case guard == "" && dotted:
		fmt.Fprintf(sb, "    %s -.-> %s\n", from, to)
	case guard == "":
		fmt.Fprintf(sb, "    %s --> %s\n", from, to)
	case dotted:
		fmt.Fprintf(sb, "    %s -. \"%s\" .-> %s\n", from, escapeLabel(guard), to)
	default:
		fmt.Fprintf(sb, "    %s -- \"%s\" --> %s\n", from, escapeLabel(guard), to)
	}
}

func countWrites(s *domain.State) int {
	n := 0
	for _, b := range s.Drivers {
		n += len(b.Writes)
	}
	return n
}

// TreeMermaid produces a Mermaid flowchart of a blend tree. Edges carry the
// child threshold, or the weight parameter under a Direct axis. Leaves are
// labelled with the clip name when clips knows the ID.
func TreeMermaid(root *domain.BlendNode, clips []*domain.Clip) string {
	names := make(map[string]string, len(clips))
	for _, c := range clips {
		names[c.ID] = c.Name
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")
	writeNode(&sb, "n", root, names)
	return sb.String()
}

func writeNode(sb *strings.Builder, id string, n *domain.BlendNode, clips map[string]string) {
	if n.IsLeaf() {
		label := n.Name
		if name, ok := clips[n.Clip]; ok {
			label = name
		}
		fmt.Fprintf(sb, "    %s([\"%s\"])\n", id, escapeLabel(label))
		return
	}

	label := n.Name
	if n.Axis.Param != "" {
		label = fmt.Sprintf("%s <br/> %s", label, n.Axis.Param)
	}
	fmt.Fprintf(sb, "    %s{\"%s\"}\n", id, escapeLabel(label))
	for i, c := range n.Axis.Children {
		child := fmt.Sprintf("%s_%d", id, i)
		edge := fmt.Sprintf("%g", c.Threshold)
		if n.Axis.Kind == domain.AxisDirect {
			edge = c.Weight
		}
		fmt.Fprintf(sb, "    %s -- \"%s\" --> %s\n", id, escapeLabel(edge), child)
		writeNode(sb, child, c.Node, clips)
	}
}

// escapeLabel swaps double quotes, which end a Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitize(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
