package slot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"queencare-storefront/internal/domain"
)

// fileSnapshot is rewritten to disk after every mutation.
type fileSnapshot struct {
	Slots map[string]map[string]string `json:"slots"`
}

type fileRepo struct {
	mu    sync.Mutex
	path  string
	slots map[string]map[string]string
}

// NewFile keeps slots in memory and mirrors them into a JSON snapshot at path.
// An empty path disables the snapshot, which is handy for tests.
func NewFile(path string) (Repository, error) {
	r := &fileRepo{path: path, slots: make(map[string]map[string]string)}
	snap, err := readFileSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("read slot snapshot: %w", err)
	}
	if snap != nil && snap.Slots != nil {
		r.slots = snap.Slots
	}
	return r, nil
}

func (r *fileRepo) Get(_ context.Context, owner, name string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.slots[owner][name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return []byte(payload), nil
}

func (r *fileRepo) Put(_ context.Context, owner, name string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, existed := r.slots[owner][name]
	if r.slots[owner] == nil {
		r.slots[owner] = make(map[string]string)
	}
	r.slots[owner][name] = string(data)
	if err := r.persist(); err != nil {
		if existed {
			r.slots[owner][name] = prev
		} else {
			r.forget(owner, name)
		}
		return err
	}
	return nil
}

func (r *fileRepo) Delete(_ context.Context, owner, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, existed := r.slots[owner][name]
	if !existed {
		return nil
	}
	r.forget(owner, name)
	if err := r.persist(); err != nil {
		if r.slots[owner] == nil {
			r.slots[owner] = make(map[string]string)
		}
		r.slots[owner][name] = prev
		return err
	}
	return nil
}

func (r *fileRepo) Ping(context.Context) error {
	return nil
}

func (r *fileRepo) forget(owner, name string) {
	delete(r.slots[owner], name)
	if len(r.slots[owner]) == 0 {
		delete(r.slots, owner)
	}
}

func (r *fileRepo) persist() error {
	if r.path == "" {
		return nil
	}
	return writeFileSnapshot(r.path, fileSnapshot{Slots: r.slots})
}

func readFileSnapshot(path string) (*fileSnapshot, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var snap fileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func writeFileSnapshot(path string, snap fileSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(temp, path)
}
