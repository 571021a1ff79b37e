// Package container implements identity-preserving publishing of generated
// graphs.
//
// A container is a named group of slots in a ports.SlotStore. Publishing
// under a key looks up the existing slot and overwrites its content, so the
// slot ID external references point at survives every regeneration. A root
// marker slot (domain.RootKey) is written on first use and survives Reset.
//
// The Manager serializes access per container name, in process and,
// optionally, across processes through a ports.DistributedLocker.
//
// Usage:
//
//	mgr := container.NewManager(memory.NewStore())
//	err := mgr.WithLock(ctx, "Avatar", func(ctx context.Context, c *container.Container) error {
//		_, err := c.Publish(ctx, c.Key("Main", "Animator"), content)
//		return err
//	})
package container
