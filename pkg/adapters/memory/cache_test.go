package memory_test

import (
	"testing"

	"github.com/aretw0/pathfinder/pkg/adapters/memory"
	"github.com/aretw0/pathfinder/pkg/ports/tests"
)

func TestMemoryCache_Contract(t *testing.T) {
	cache := memory.NewCache()
	tests.DigestCacheContractTest(t, cache)
}
