package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/animgraph/pkg/domain"
)

// Store implements ports.SlotStore using the local filesystem.
// Each container is a directory holding one JSON file per slot.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".animgraph/slots".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".animgraph", "slots")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) dir(container string) string {
	return filepath.Join(s.BasePath, url.PathEscape(container))
}

func (s *Store) path(container, key string) string {
	return filepath.Join(s.dir(container), url.PathEscape(key)+".json")
}

// validContainer rejects names that would resolve outside BasePath.
// PathEscape leaves "." and ".." untouched.
func validContainer(container string) error {
	if container == "" {
		return fmt.Errorf("container cannot be empty")
	}
	if container == "." || container == ".." {
		return fmt.Errorf("invalid container name: %q", container)
	}
	return nil
}

func validate(container, key string) error {
	if err := validContainer(container); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("slot key cannot be empty")
	}
	return nil
}

// Put persists the slot to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Put(ctx context.Context, container string, slot *domain.Slot) error {
	if err := validate(container, slot.Key); err != nil {
		return err
	}

	dir := s.dir(container)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure container directory: %w", err)
	}

	data, err := json.MarshalIndent(slot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}

	// Same directory as the destination, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(container, slot.Key)
	// os.Rename does not replace an existing file on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing slot file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to slot file: %w", err)
	}
	return nil
}

// Get reads the slot from its JSON file.
func (s *Store) Get(ctx context.Context, container, key string) (*domain.Slot, error) {
	if err := validate(container, key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(container, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}

	var slot domain.Slot
	if err := json.Unmarshal(data, &slot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot: %w", err)
	}
	return &slot, nil
}

// Delete removes the slot file.
func (s *Store) Delete(ctx context.Context, container, key string) error {
	if err := validate(container, key); err != nil {
		return err
	}

	err := os.Remove(s.path(container, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete slot file: %w", err)
	}
	return nil
}

// List returns the slot keys of a container.
func (s *Store) List(ctx context.Context, container string) ([]string, error) {
	if err := validContainer(container); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir(container))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
