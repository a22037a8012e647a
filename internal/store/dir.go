package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tatianab/delve/internal/models"
)

// Dir is a Backend keeping one YAML file per record:
//
//	<dir>/global.yaml
//	<dir>/player.yaml
//	<dir>/combat.yaml
//	<dir>/rooms/<path>.yaml
type Dir struct {
	root string
}

// OpenDir prepares dir for use as a Backend.
func OpenDir(dir string) (*Dir, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	root := filepath.Clean(dir)
	if err := os.MkdirAll(filepath.Join(root, "rooms"), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) path(kind, key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid record key %q", key)
	}
	switch kind {
	case models.KindRoom:
		return filepath.Join(d.root, "rooms", key+".yaml"), nil
	case models.KindGlobal, models.KindPlayer, models.KindCombat:
		return filepath.Join(d.root, kind+".yaml"), nil
	}
	return "", fmt.Errorf("unknown record kind %q", kind)
}

// Get reads one record file.
func (d *Dir) Get(ctx context.Context, kind, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := d.path(kind, key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Apply stages every write in a temporary file before renaming any of them
// into place, so an encoding or disk-full failure leaves the old files intact.
// Each rename is atomic, but a failure after the first rename leaves the
// earlier records of the batch updated.
func (d *Dir) Apply(ctx context.Context, ops []Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	type staged struct{ tmp, final string }
	var writes []staged
	var removals []string
	cleanup := func() {
		for _, w := range writes {
			_ = os.Remove(w.tmp)
		}
	}

	for _, op := range ops {
		p, err := d.path(op.Kind, op.Key)
		if err != nil {
			cleanup()
			return err
		}
		if op.Delete {
			removals = append(removals, p)
			continue
		}
		f, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
		if err != nil {
			cleanup()
			return fmt.Errorf("stage %s: %w", op.Key, err)
		}
		writes = append(writes, staged{tmp: f.Name(), final: p})
		if _, err := f.Write(op.Data); err != nil {
			f.Close()
			cleanup()
			return fmt.Errorf("stage %s: %w", op.Key, err)
		}
		if err := f.Close(); err != nil {
			cleanup()
			return fmt.Errorf("stage %s: %w", op.Key, err)
		}
	}

	for _, w := range writes {
		if err := os.Rename(w.tmp, w.final); err != nil {
			cleanup()
			return fmt.Errorf("write %s: %w", filepath.Base(w.final), err)
		}
	}
	for _, p := range removals {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

// Close is a no-op.
func (d *Dir) Close() error { return nil }
