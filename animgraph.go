package animgraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/animgraph/internal/logging"
	"github.com/aretw0/animgraph/internal/validator"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/container"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/ports"
)

// KindAnimator is the slot kind of a composed controller.
const KindAnimator = "Animator"

// Output is one artifact produced by a build.
// A nil Controller removes the slot the output would occupy.
type Output struct {
	Name       string
	Kind       string
	Controller *domain.Controller
}

// BuildFunc composes the outputs of a pass from a fresh session.
type BuildFunc func(s *compile.Session) ([]Output, error)

// Result summarizes a successful pass.
type Result struct {
	Container string
	Slots     []*domain.Slot
	Removed   int
	Duration  time.Duration
}

// Generator is the high-level entry point: it runs regeneration passes
// against one container of a slot store.
type Generator struct {
	name     string
	manager  *container.Manager
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	validate bool
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithLocker serializes passes across processes sharing the store.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(g *Generator) {
		g.locker = locker
	}
}

// WithLockTTL overrides container.DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(g *Generator) {
		g.lockTTL = ttl
	}
}

// WithoutValidation skips graph validation before publishing.
func WithoutValidation() Option {
	return func(g *Generator) {
		g.validate = false
	}
}

// New creates a Generator for the named container.
func New(containerName string, store ports.SlotStore, opts ...Option) (*Generator, error) {
	if containerName == "" {
		return nil, fmt.Errorf("container name is required")
	}
	if store == nil {
		return nil, fmt.Errorf("slot store is required")
	}

	g := &Generator{name: containerName, validate: true}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	g.logger = g.logger.With("container", containerName)

	mopts := []container.Option{
		container.WithLogger(g.logger),
		container.WithLifecycleHooks(g.hooks),
	}
	if g.locker != nil {
		mopts = append(mopts, container.WithLocker(g.locker))
	}
	if g.lockTTL > 0 {
		mopts = append(mopts, container.WithLockTTL(g.lockTTL))
	}
	g.manager = container.NewManager(store, mopts...)
	return g, nil
}

// Name returns the container name.
func (g *Generator) Name() string {
	return g.name
}

// Manager exposes the container manager for direct slot access.
func (g *Generator) Manager() *container.Manager {
	return g.manager
}

// Regenerate runs one pass: it builds every output in memory, aborts on the
// first configuration error, then publishes each controller under
// <container>_<name>_<kind> and prunes slots no output claimed.
// The container stays locked for the whole pass.
func (g *Generator) Regenerate(ctx context.Context, build BuildFunc) (*Result, error) {
	start := time.Now()
	g.firePass(ctx, domain.EventPassStart, 0, 0, nil)

	res := &Result{Container: g.name}
	err := g.manager.WithLock(ctx, g.name, func(ctx context.Context, c *container.Container) error {
		encoded, err := g.build(build)
		if err != nil {
			return err
		}

		keep := make([]string, 0, len(encoded))
		for _, e := range encoded {
			if err := ctx.Err(); err != nil {
				return err
			}
			slot, err := c.Publish(ctx, e.key, e.content)
			if err != nil {
				return err
			}
			if slot != nil {
				keep = append(keep, e.key)
				res.Slots = append(res.Slots, slot)
			}
		}

		res.Removed, err = c.Prune(ctx, keep...)
		return err
	})
	res.Duration = time.Since(start)
	g.firePass(ctx, domain.EventPassEnd, len(res.Slots), res.Duration, err)

	if err != nil {
		g.logger.Error("regeneration failed", "err", err)
		return nil, err
	}
	g.logger.Info("regeneration complete", "published", len(res.Slots), "removed", res.Removed, "duration", res.Duration)
	return res, nil
}

type encodedOutput struct {
	key     string
	content []byte
}

func (g *Generator) build(build BuildFunc) ([]encodedOutput, error) {
	s := compile.NewSession(g.name, compile.WithLogger(g.logger))
	outputs, err := build(s)
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	seen := make(map[string]bool, len(outputs))
	encoded := make([]encodedOutput, 0, len(outputs))
	for _, out := range outputs {
		if out.Name == "" {
			return nil, errors.New("output name cannot be empty")
		}
		kind := out.Kind
		if kind == "" {
			kind = KindAnimator
		}
		key := container.SlotKey(g.name, out.Name, kind)
		if seen[key] {
			return nil, fmt.Errorf("duplicate output %s", key)
		}
		seen[key] = true

		if out.Controller == nil {
			encoded = append(encoded, encodedOutput{key: key})
			continue
		}
		if g.validate {
			if err := validator.Validate(out.Controller); err != nil {
				return nil, fmt.Errorf("output %s is invalid: %w", key, err)
			}
		}
		data, err := out.Controller.Encode()
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, encodedOutput{key: key, content: data})
	}
	return encoded, nil
}

func (g *Generator) firePass(ctx context.Context, typ domain.EventType, outputs int, d time.Duration, err error) {
	hook := g.hooks.OnPassStart
	if typ == domain.EventPassEnd {
		hook = g.hooks.OnPassEnd
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.PassEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, Container: g.name},
		Outputs:   outputs,
		Duration:  d,
		Err:       err,
	})
}

// Reset removes every generated slot, keeping the container's root marker.
func (g *Generator) Reset(ctx context.Context) (int, error) {
	return g.manager.Reset(ctx, g.name)
}

// Lookup returns the slot of one output.
func (g *Generator) Lookup(ctx context.Context, name, kind string) (*domain.Slot, error) {
	if kind == "" {
		kind = KindAnimator
	}
	return g.manager.Lookup(ctx, g.name, container.SlotKey(g.name, name, kind))
}

// Controller decodes the controller published for one output.
func (g *Generator) Controller(ctx context.Context, name string) (*domain.Controller, error) {
	slot, err := g.Lookup(ctx, name, KindAnimator)
	if err != nil {
		return nil, err
	}
	return domain.DecodeController(slot.Content)
}
