package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend kinds accepted by Open.
const (
	KindYAML   = "yaml"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open builds the Store selected by kind. dataDir holds the YAML records;
// sqlitePath defaults to dataDir/delve.db.
func Open(kind, dataDir, sqlitePath string) (*Store, error) {
	switch kind {
	case KindYAML, "":
		b, err := OpenDir(dataDir)
		if err != nil {
			return nil, err
		}
		return New(b), nil
	case KindSQLite:
		if sqlitePath == "" {
			sqlitePath = filepath.Join(dataDir, "delve.db")
		}
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		b, err := OpenSQLite(sqlitePath)
		if err != nil {
			return nil, err
		}
		return New(b), nil
	case KindMemory:
		return New(NewMemory()), nil
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}
