package memory_test

import (
	"testing"

	"github.com/aretw0/cliching/internal/adapters/memory"
	"github.com/aretw0/cliching/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.New())
}
