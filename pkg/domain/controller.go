package domain

import (
	"encoding/json"
	"fmt"
)

// Controller is the composed root graph: the parameters it reads, the clips
// its trees reference and its layers in evaluation order.
type Controller struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	Clips      []*Clip     `json:"clips"`
	Layers     []*Layer    `json:"layers"`
}

// Layer looks up a layer by name.
func (c *Controller) Layer(name string) *Layer {
	for _, l := range c.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Parameter looks up a parameter by name.
func (c *Controller) Parameter(name string) (Parameter, bool) {
	for _, p := range c.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Defaults returns the default value of every parameter.
func (c *Controller) Defaults() Values {
	values := make(Values, len(c.Parameters))
	for _, p := range c.Parameters {
		values[p.Name] = p.Default
	}
	return values
}

// Encode returns the canonical serialized form used as slot content.
// Every collection in a controller is an ordered slice, so equal
// controllers encode to identical bytes.
func (c *Controller) Encode() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode controller %s: %w", c.Name, err)
	}
	return data, nil
}

// DecodeController parses slot content produced by Encode.
func DecodeController(data []byte) (*Controller, error) {
	var c Controller
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode controller: %w", err)
	}
	return &c, nil
}
