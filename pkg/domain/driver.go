package domain

import "math/rand/v2"

// WriteOp is the kind of a parameter write.
type WriteOp string

const (
	WriteSet       WriteOp = "set"
	WriteCopy      WriteOp = "copy"
	WriteRandomize WriteOp = "randomize"
)

// ParameterWrite is one entry of a driver batch.
type ParameterWrite struct {
	Op     WriteOp `json:"op"`
	Param  string  `json:"param"`
	Kind   Kind    `json:"kind"`
	Value  float64 `json:"value,omitempty"`
	Source string  `json:"source,omitempty"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
}

// DriverBatch is an ordered list of writes applied when a state is entered.
// Local batches run only on the owning process and are never networked.
type DriverBatch struct {
	Local  bool             `json:"local"`
	Writes []ParameterWrite `json:"writes"`
}

// Sets appends a constant write.
func (b *DriverBatch) Sets(p Param, v float64) *DriverBatch {
	b.Writes = append(b.Writes, ParameterWrite{Op: WriteSet, Param: p.Name(), Kind: p.Kind(), Value: v})
	return b
}

// SetsBool appends a boolean constant write.
func (b *DriverBatch) SetsBool(p BoolParam, v bool) *DriverBatch {
	f := 0.0
	if v {
		f = 1
	}
	return b.Sets(p, f)
}

// Copies appends a write copying src into dst.
func (b *DriverBatch) Copies(src, dst Param) *DriverBatch {
	b.Writes = append(b.Writes, ParameterWrite{Op: WriteCopy, Param: dst.Name(), Kind: dst.Kind(), Source: src.Name()})
	return b
}

// Randomizes appends a write drawing a uniform value in [min, max].
func (b *DriverBatch) Randomizes(p Param, min, max float64) *DriverBatch {
	b.Writes = append(b.Writes, ParameterWrite{Op: WriteRandomize, Param: p.Name(), Kind: p.Kind(), Min: min, Max: max})
	return b
}

// Apply performs the writes in order. Writes see the results of earlier
// writes in the same batch. Int targets are truncated and bool targets are
// coerced to 0 or 1 (any non-zero value reads as true). rng may be nil when
// the batch holds no randomize writes.
func (b DriverBatch) Apply(values Values, rng *rand.Rand) {
	for _, w := range b.Writes {
		var v float64
		switch w.Op {
		case WriteSet:
			v = w.Value
		case WriteCopy:
			v = values[w.Source]
		case WriteRandomize:
			v = w.Min + rng.Float64()*(w.Max-w.Min)
			if w.Kind == KindInt {
				v = w.Min + float64(rng.IntN(int(w.Max-w.Min)+1))
			}
		}
		values[w.Param] = coerce(w.Kind, v)
	}
}

func coerce(k Kind, v float64) float64 {
	switch k {
	case KindInt:
		return float64(int64(v))
	case KindBool:
		if v != 0 {
			return 1
		}
		return 0
	}
	return v
}
