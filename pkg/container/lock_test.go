package container

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/animgraph/pkg/adapters/memory"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("container-%d", i)
		_, _ = mgr.Publish(ctx, name, "Main", []byte("x"))
		_, _ = mgr.Reset(ctx, name)
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after %d passes", lockCount, count)
	}
}
