package memory_test

import (
	"testing"

	"github.com/aretw0/animgraph/pkg/adapters/memory"
	"github.com/aretw0/animgraph/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	tests.SlotStoreContractTest(t, memory.NewStore())
}
