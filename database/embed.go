// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
// Deploy edilen binary'nin yanında migration dosyası taşımak gerekmez.
package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var embeddedFS embed.FS

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını kök dizin
// olarak sunar — New() doğrudan bu FS'i alır.
var EmbeddedMigrations = func() fs.FS {
	sub, err := fs.Sub(embeddedFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}()
