package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/aretw0/animgraph/pkg/adapters/bolt"
	"github.com/aretw0/animgraph/pkg/adapters/file"
	"github.com/aretw0/animgraph/pkg/adapters/memory"
	"github.com/aretw0/animgraph/pkg/adapters/redis"
	"github.com/aretw0/animgraph/pkg/persistence/middleware"
	"github.com/aretw0/animgraph/pkg/ports"
	"github.com/spf13/cobra"
)

// encryptionKeyEnv holds a hex AES-256 key; when set, slot content is
// encrypted at rest.
const encryptionKeyEnv = "ANIMGRAPH_ENCRYPTION_KEY"

const (
	defaultFilePath = ".animgraph/slots"
	defaultBoltPath = ".animgraph/slots.db"
)

// backend is an opened slot store and, for shared backends, the locker
// serializing passes between processes.
type backend struct {
	store  ports.SlotStore
	locker ports.DistributedLocker
	close  func() error
}

func openBackend(cmd *cobra.Command) (*backend, error) {
	b, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	key := os.Getenv(encryptionKeyEnv)
	if key == "" {
		return b, nil
	}

	raw, err := hex.DecodeString(key)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("%s is not hex: %w", encryptionKeyEnv, err)
	}
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: raw})
	if err != nil {
		b.close()
		return nil, err
	}
	b.store = middleware.Chain(b.store, mw)
	return b, nil
}

func openStore(cmd *cobra.Command) (*backend, error) {
	kind, _ := cmd.Flags().GetString("store")
	path, _ := cmd.Flags().GetString("path")
	nop := func() error { return nil }

	switch kind {
	case "memory":
		return &backend{store: memory.NewStore(), close: nop}, nil
	case "file":
		if path == "" {
			path = defaultFilePath
		}
		return &backend{store: file.New(path), close: nop}, nil
	case "bolt":
		if path == "" {
			path = defaultBoltPath
		}
		s, err := bolt.Open(path)
		if err != nil {
			return nil, err
		}
		return &backend{store: s, close: s.Close}, nil
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		s := redis.New(addr, "", 0)
		return &backend{
			store:  s,
			locker: redis.NewLocker(s.Client(), "animgraph:lock:"),
			close:  s.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q (want memory, file, bolt or redis)", kind)
}
