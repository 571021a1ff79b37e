/*
Package animgraph generates animation controller graphs from compact
parameter declarations and publishes them into an identity-preserving
slot store.

# Concept

A controller is a set of typed parameters, a registry of clips and a stack
of layers. Layers are state machines whose states carry drivers (parameter
writes applied on entry) and blend trees (decision trees over float
parameters whose leaves are clips). Writing those graphs by hand does not
scale: a colour picker alone needs eight leaves per target, and a menu of
mutually exclusive toggles needs a guard per pair.

The compilers in pkg/compile turn short declarations into such graphs:

  - BinaryTree, RGBTree and HSVTree: one axis per parameter, 2^k corner clips.
  - StepTree and PatternTree: piecewise-constant selection among N clips.
  - HueTree: a ring of hue samples plus white and black anchors.
  - ExclusiveLayer: at most one of a set of toggles is active.
  - PresetLayer: apply, save, load and randomize named parameter sets.

# Regeneration

A Generator owns one container of a ports.SlotStore. Regenerate runs a
pass: it builds everything in memory through a fresh compile.Session, stops
on the first configuration error, and only then publishes each controller
under <container>_<name>_<kind>. Slots keep the ID they were created with,
so anything referencing a slot survives regeneration. Slots no output
claimed are pruned at the end of the pass.

	g, err := animgraph.New("Avatar", memory.NewStore())
	if err != nil {
		log.Fatal(err)
	}
	res, err := g.Regenerate(ctx, func(s *compile.Session) ([]animgraph.Output, error) {
		ctrl, err := s.Controller(s.TreeLayer("Trees", s.RGBTree("Av/Shirt", []string{"Body"}, "_Color")))
		return []animgraph.Output{{Name: "Main", Controller: ctrl}}, err
	})

Stores live in pkg/adapters (memory, file, bolt, redis). The redis adapter
also provides a distributed locker for passes run from several processes.

# Observability

Pass and slot events are exposed through domain.LifecycleHooks; the CLI
wires them to Prometheus collectors and structured logs.
*/
package animgraph
