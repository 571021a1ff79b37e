package domain

import (
	"fmt"
	"strings"
)

// Op is an atomic comparison operator.
type Op string

const (
	OpEqual    Op = "equals"
	OpNotEqual Op = "not_equal"
	OpGreater  Op = "greater"
	OpLess     Op = "less"
	OpTrue     Op = "true"
	OpFalse    Op = "false"
)

// Values holds parameter values by name. Bools are stored as 0 or 1.
type Values map[string]float64

// Bool reports the boolean reading of a value: anything non-zero is true.
func (v Values) Bool(name string) bool {
	return v[name] != 0
}

// Comparison is one atomic guard term over a single parameter.
type Comparison struct {
	Param string  `json:"param"`
	Kind  Kind    `json:"kind"`
	Op    Op      `json:"op"`
	Value float64 `json:"value,omitempty"`
}

// Holds evaluates the comparison against values.
// Int parameters are truncated before comparing.
func (c Comparison) Holds(values Values) bool {
	x := values[c.Param]
	if c.Kind == KindInt {
		x = float64(int64(x))
	}
	switch c.Op {
	case OpEqual:
		return x == c.Value
	case OpNotEqual:
		return x != c.Value
	case OpGreater:
		return x > c.Value
	case OpLess:
		return x < c.Value
	case OpTrue:
		return x != 0
	case OpFalse:
		return x == 0
	}
	return false
}

func (c Comparison) String() string {
	switch c.Op {
	case OpTrue:
		return c.Param
	case OpFalse:
		return "!" + c.Param
	case OpEqual:
		return fmt.Sprintf("%s == %g", c.Param, c.Value)
	case OpNotEqual:
		return fmt.Sprintf("%s != %g", c.Param, c.Value)
	case OpGreater:
		return fmt.Sprintf("%s > %g", c.Param, c.Value)
	case OpLess:
		return fmt.Sprintf("%s < %g", c.Param, c.Value)
	}
	return string(c.Op)
}

// Condition is a disjunction of conjunction groups.
// An empty condition always holds.
type Condition struct {
	Groups [][]Comparison `json:"groups,omitempty"`
}

// When starts a condition with a single AND-group.
func When(terms ...Comparison) Condition {
	return Condition{Groups: [][]Comparison{append([]Comparison(nil), terms...)}}
}

// And appends terms to the last AND-group.
func (c Condition) And(terms ...Comparison) Condition {
	if len(c.Groups) == 0 {
		return When(terms...)
	}
	groups := cloneGroups(c.Groups)
	last := len(groups) - 1
	groups[last] = append(groups[last], terms...)
	return Condition{Groups: groups}
}

// Or opens a new AND-group.
func (c Condition) Or(terms ...Comparison) Condition {
	groups := cloneGroups(c.Groups)
	groups = append(groups, append([]Comparison(nil), terms...))
	return Condition{Groups: groups}
}

// Holds reports whether any AND-group is fully satisfied.
func (c Condition) Holds(values Values) bool {
	if len(c.Groups) == 0 {
		return true
	}
	for _, group := range c.Groups {
		ok := true
		for _, term := range group {
			if !term.Holds(values) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Params lists every parameter referenced by the condition, in order of appearance.
func (c Condition) Params() []string {
	var names []string
	seen := make(map[string]bool)
	for _, group := range c.Groups {
		for _, term := range group {
			if !seen[term.Param] {
				seen[term.Param] = true
				names = append(names, term.Param)
			}
		}
	}
	return names
}

func (c Condition) String() string {
	if len(c.Groups) == 0 {
		return ""
	}
	ors := make([]string, 0, len(c.Groups))
	for _, group := range c.Groups {
		ands := make([]string, 0, len(group))
		for _, term := range group {
			ands = append(ands, term.String())
		}
		ors = append(ors, strings.Join(ands, " && "))
	}
	return strings.Join(ors, " || ")
}

func cloneGroups(groups [][]Comparison) [][]Comparison {
	out := make([][]Comparison, len(groups))
	for i, g := range groups {
		out[i] = append([]Comparison(nil), g...)
	}
	return out
}

// AndAll appends terms to every AND-group, distributing a conjunction over
// the disjunction. On an empty condition it behaves like When.
func (c Condition) AndAll(terms ...Comparison) Condition {
	if len(c.Groups) == 0 {
		return When(terms...)
	}
	groups := cloneGroups(c.Groups)
	for i := range groups {
		groups[i] = append(groups[i], terms...)
	}
	return Condition{Groups: groups}
}
