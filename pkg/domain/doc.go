/*
Package domain contains the core models of the animgraph compiler.

It defines the decision structures produced by the compilers in pkg/compile:
typed parameters, opaque clips, blend trees and layered state machines, plus
the persistent slot the container publishes them into. The package is kept
free of I/O and persistence concerns.

# Key Entities

  - Parameter: a named, typed (Float, Bool, Int) input. Identity is the name.
  - Clip: an opaque constant-value sample applied to (target, property) pairs.
  - BlendNode: either a Leaf holding a clip or an Axis keyed by one parameter.
  - Layer: a state machine with a single entry state, guarded transitions and
    batched parameter writes (drivers).
  - Controller: the composed root graph published under a stable key.
  - Slot: stable identity plus replaceable content inside a container.
*/
package domain
