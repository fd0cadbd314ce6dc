package todo

import "io/fs"

type Database interface {
	Close() error
	Migrate(fs.FS) error
}
