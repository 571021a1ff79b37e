package compile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/animgraph/internal/logging"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/cespare/xxhash/v2"
)

// Session owns the parameter space and the clip registry of one pass.
type Session struct {
	name string

	params     map[string]*domain.Parameter
	paramOrder []string

	clips     map[string]*domain.Clip
	clipOrder []string

	err    error
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates an empty session for the named graph.
func NewSession(name string, opts ...Option) *Session {
	s := &Session{
		name:   name,
		params: make(map[string]*domain.Parameter),
		clips:  make(map[string]*domain.Clip),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the graph name the session was created for.
func (s *Session) Name() string { return s.name }

// Err returns the first configuration error recorded by the session.
func (s *Session) Err() error { return s.err }

func (s *Session) fail(err error) error {
	if s.err == nil {
		s.err = err
		s.logger.Debug("configuration error", "err", err)
	}
	return err
}

// register creates name with kind on first request and returns the existing
// parameter afterwards. Asking for an existing name with another kind is a
// configuration error.
func (s *Session) register(name string, kind domain.Kind) *domain.Parameter {
	if p, ok := s.params[name]; ok {
		if p.Kind != kind {
			s.fail(fmt.Errorf("%w: %s is %s, requested as %s", domain.ErrKindMismatch, name, p.Kind, kind))
		}
		return p
	}
	p := &domain.Parameter{Name: name, Kind: kind}
	s.params[name] = p
	s.paramOrder = append(s.paramOrder, name)
	return p
}

// Float returns the float parameter name, creating it if absent.
func (s *Session) Float(name string) domain.FloatParam {
	s.register(name, domain.KindFloat)
	return domain.Float(name)
}

// Bool returns the bool parameter name, creating it if absent.
func (s *Session) Bool(name string) domain.BoolParam {
	s.register(name, domain.KindBool)
	return domain.Bool(name)
}

// Int returns the int parameter name, creating it if absent.
func (s *Session) Int(name string) domain.IntParam {
	s.register(name, domain.KindInt)
	return domain.Int(name)
}

// Param registers p under its own kind and returns it.
func (s *Session) Param(p domain.Param) domain.Param {
	s.register(p.Name(), p.Kind())
	return p
}

// Override sets the default value of a registered parameter.
func (s *Session) Override(p domain.Param, v float64) {
	s.register(p.Name(), p.Kind()).Default = v
}

// Lookup returns the parameter registered under name.
func (s *Session) Lookup(name string) (domain.Parameter, bool) {
	p, ok := s.params[name]
	if !ok {
		return domain.Parameter{}, false
	}
	return *p, true
}

// Parameters returns every registered parameter in creation order.
func (s *Session) Parameters() []domain.Parameter {
	out := make([]domain.Parameter, 0, len(s.paramOrder))
	for _, name := range s.paramOrder {
		out = append(out, *s.params[name])
	}
	return out
}

// Clip returns the clip for the given writes, creating it on first request.
// The clip keeps the name it was first requested with; identity derives
// from the writes only.
func (s *Session) Clip(name string, writes ...domain.PropertyWrite) *domain.Clip {
	if len(writes) == 0 {
		s.fail(fmt.Errorf("%w: clip %q writes nothing", domain.ErrClipCount, name))
	}
	key := domain.Key(writes)
	if c, ok := s.clips[key]; ok {
		return c
	}
	c := &domain.Clip{
		ID:     fmt.Sprintf("%016x", xxhash.Sum64String(key)),
		Name:   name,
		Writes: append([]domain.PropertyWrite(nil), writes...),
	}
	s.clips[key] = c
	s.clipOrder = append(s.clipOrder, key)
	return c
}

// Clips returns every clip in creation order.
func (s *Session) Clips() []*domain.Clip {
	out := make([]*domain.Clip, 0, len(s.clipOrder))
	for _, key := range s.clipOrder {
		out = append(out, s.clips[key])
	}
	return out
}

// Animates builds a scalar write for every target.
func Animates(targets []string, property string, value float64) []domain.PropertyWrite {
	writes := make([]domain.PropertyWrite, 0, len(targets))
	for _, t := range targets {
		writes = append(writes, domain.PropertyWrite{Target: t, Property: property, Value: []float64{value}})
	}
	return writes
}

// AnimatesColor builds a color write for every target.
func AnimatesColor(targets []string, property string, c domain.Color, extended bool) []domain.PropertyWrite {
	writes := make([]domain.PropertyWrite, 0, len(targets))
	for _, t := range targets {
		writes = append(writes, domain.PropertyWrite{Target: t, Property: property, Value: c.Values(), Extended: extended})
	}
	return writes
}

// Controller composes layers into a root graph. It normalizes every tree,
// checks the session for configuration errors and snapshots the parameter
// space and clip registry.
func (s *Session) Controller(layers ...*domain.Layer) (*domain.Controller, error) {
	var errs []error
	if s.err != nil {
		errs = append(errs, s.err)
	}
	for _, l := range layers {
		if l == nil {
			errs = append(errs, errors.New("nil layer"))
			continue
		}
		for _, st := range l.States {
			if st.Motion == nil {
				continue
			}
			if err := st.Motion.Normalize(); err != nil {
				errs = append(errs, fmt.Errorf("layer %s state %s: %w", l.Name, st.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}

	ctrl := &domain.Controller{
		Name:       s.name,
		Parameters: s.Parameters(),
		Clips:      s.Clips(),
		Layers:     layers,
	}
	s.logger.Debug("controller composed",
		"graph", s.name,
		"layers", len(layers),
		"parameters", len(ctrl.Parameters),
		"clips", len(ctrl.Clips),
	)
	return ctrl, nil
}
