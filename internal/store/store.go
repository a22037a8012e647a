// Package store persists the world state records: global progress, the
// current run's player, the active combat and the rooms.
//
// Records are YAML documents held by a Backend. Writes are collected in a Tx
// and applied together by Commit, so a command that is rejected half way
// simply never commits and leaves every record untouched.
package store

import (
	"context"
	"fmt"

	"github.com/tatianab/delve/internal/models"
)

// Singleton record keys.
const (
	keyGlobal  = "global"
	keyCurrent = "current"
)

// Op is one write applied by a Backend.
type Op struct {
	Kind   string
	Key    string
	Data   []byte
	Delete bool
}

// Backend stores opaque records addressed by kind and key.
type Backend interface {
	Get(ctx context.Context, kind, key string) ([]byte, bool, error)
	// Apply performs ops in order. Each record is replaced atomically;
	// whether a failure can leave some records of the batch applied
	// depends on the backend.
	Apply(ctx context.Context, ops []Op) error
	Close() error
}

// Store is the typed view over a Backend.
type Store struct {
	backend Backend
}

// New wraps a backend.
func New(b Backend) *Store {
	return &Store{backend: b}
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Global loads global progress, defaulting when none was saved yet.
func (s *Store) Global(ctx context.Context) (models.GlobalProgress, error) {
	data, ok, err := s.backend.Get(ctx, models.KindGlobal, keyGlobal)
	if err != nil {
		return models.GlobalProgress{}, fmt.Errorf("load global: %w", err)
	}
	if !ok {
		return models.DefaultGlobal(), nil
	}
	return models.DecodeGlobal(data)
}

// Player loads the current run's player record.
func (s *Store) Player(ctx context.Context) (models.PlayerState, bool, error) {
	data, ok, err := s.backend.Get(ctx, models.KindPlayer, keyCurrent)
	if err != nil {
		return models.PlayerState{}, false, fmt.Errorf("load player: %w", err)
	}
	if !ok {
		return models.PlayerState{}, false, nil
	}
	p, err := models.DecodePlayer(data)
	return p, err == nil, err
}

// Combat loads the active combat record.
func (s *Store) Combat(ctx context.Context) (models.CombatState, bool, error) {
	data, ok, err := s.backend.Get(ctx, models.KindCombat, keyCurrent)
	if err != nil {
		return models.CombatState{}, false, fmt.Errorf("load combat: %w", err)
	}
	if !ok {
		return models.CombatState{}, false, nil
	}
	c, err := models.DecodeCombat(data)
	return c, err == nil, err
}

// Room loads the record of the room at path.
func (s *Store) Room(ctx context.Context, path string) (models.RoomRecord, bool, error) {
	data, ok, err := s.backend.Get(ctx, models.KindRoom, path)
	if err != nil {
		return models.RoomRecord{}, false, fmt.Errorf("load room %s: %w", path, err)
	}
	if !ok {
		return models.RoomRecord{}, false, nil
	}
	r, err := models.DecodeRoom(data)
	return r, err == nil, err
}

// Begin starts collecting writes.
func (s *Store) Begin() *Tx {
	return &Tx{store: s}
}

// Tx buffers record writes until Commit.
type Tx struct {
	store *Store
	ops   []Op
	err   error
}

func (tx *Tx) put(kind, key string, v any) {
	if tx.err != nil {
		return
	}
	data, err := models.Encode(v)
	if err != nil {
		tx.err = fmt.Errorf("%s %s: %w", kind, key, err)
		return
	}
	tx.ops = append(tx.ops, Op{Kind: kind, Key: key, Data: data})
}

func (tx *Tx) del(kind, key string) {
	tx.ops = append(tx.ops, Op{Kind: kind, Key: key, Delete: true})
}

// PutGlobal queues a global progress write.
func (tx *Tx) PutGlobal(g models.GlobalProgress) { tx.put(models.KindGlobal, keyGlobal, g) }

// PutPlayer queues a player write.
func (tx *Tx) PutPlayer(p models.PlayerState) { tx.put(models.KindPlayer, keyCurrent, p) }

// DeletePlayer queues removal of the player record.
func (tx *Tx) DeletePlayer() { tx.del(models.KindPlayer, keyCurrent) }

// PutCombat queues a combat write.
func (tx *Tx) PutCombat(c models.CombatState) { tx.put(models.KindCombat, keyCurrent, c) }

// DeleteCombat queues removal of the combat record.
func (tx *Tx) DeleteCombat() { tx.del(models.KindCombat, keyCurrent) }

// PutRoom queues a room write.
func (tx *Tx) PutRoom(r models.RoomRecord) { tx.put(models.KindRoom, r.Path, r) }

// Commit applies every queued write at once.
func (tx *Tx) Commit(ctx context.Context) error {
	if tx.err != nil {
		return fmt.Errorf("commit: %w", tx.err)
	}
	if len(tx.ops) == 0 {
		return nil
	}
	if err := tx.store.backend.Apply(ctx, compact(tx.ops)); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	tx.ops = nil
	return nil
}

// compact keeps only the last write per record, in first-seen order.
func compact(ops []Op) []Op {
	last := make(map[[2]string]int, len(ops))
	for i, op := range ops {
		last[[2]string{op.Kind, op.Key}] = i
	}
	out := make([]Op, 0, len(last))
	for i, op := range ops {
		if last[[2]string{op.Kind, op.Key}] == i {
			out = append(out, op)
		}
	}
	return out
}
