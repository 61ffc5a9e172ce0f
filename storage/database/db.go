package database

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/storage/database/bolt"
	"github.com/trezcool/lessonnotes/storage/database/dummy"
)

const (
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Open opens the key-value store selected by conf.Storage.Driver.
// A relative bolt path is resolved against the working directory.
func Open(conf *core.Config) (core.KeyValueStore, error) {
	switch conf.Storage.Driver {
	case DriverBolt, "":
		path := conf.Storage.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(conf.WorkDir, path)
		}
		return boltdb.Open(path)
	case DriverMemory:
		return dummydb.Open()
	}
	return nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
}
