/*
Package ports defines the driven ports (interfaces) of the animgraph generator.

These interfaces decouple slot persistence from the regeneration pass, so the
same container logic runs over memory, the filesystem, bbolt or Redis.

# Key Interfaces

  - SlotStore: persists identity-stable slots, grouped by container.
  - DistributedLocker: serializes regeneration passes across processes.
*/
package ports
