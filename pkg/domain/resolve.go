package domain

const weightEpsilon = 1e-9

// Resolve reports which clips a tree selects for the given parameter values,
// keyed by clip ID. Weights of a clip reached through several positions are
// summed; negligible weights are dropped.
func Resolve(n *BlendNode, values Values) map[string]float64 {
	out := make(map[string]float64)
	resolve(n, values, 1, out)
	for id, w := range out {
		if w < weightEpsilon {
			delete(out, id)
		}
	}
	return out
}

func resolve(n *BlendNode, values Values, weight float64, out map[string]float64) {
	if weight < weightEpsilon {
		return
	}
	if n.IsLeaf() {
		out[n.Clip] += weight
		return
	}
	children := n.Axis.Children
	if len(children) == 0 {
		return
	}
	if n.Axis.Kind == AxisDirect {
		for _, c := range children {
			resolve(c.Node, values, weight*values[c.Weight], out)
		}
		return
	}

	x := values[n.Axis.Param]
	if x <= children[0].Threshold {
		resolve(children[0].Node, values, weight, out)
		return
	}
	last := len(children) - 1
	if x >= children[last].Threshold {
		resolve(children[last].Node, values, weight, out)
		return
	}
	for i := 0; i < last; i++ {
		lo, hi := children[i], children[i+1]
		if x >= lo.Threshold && x <= hi.Threshold {
			t := (x - lo.Threshold) / (hi.Threshold - lo.Threshold)
			resolve(lo.Node, values, weight*(1-t), out)
			resolve(hi.Node, values, weight*t, out)
			return
		}
	}
}

// Dominant returns the clip with the highest weight, or "" for an empty result.
// Ties resolve to the lexically smaller ID.
func Dominant(weights map[string]float64) string {
	best, bestW := "", -1.0
	for id, w := range weights {
		if w > bestW || (w == bestW && id < best) {
			best, bestW = id, w
		}
	}
	return best
}
