package database

import "embed"

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını binary'ye gömer.
// Deploy edilen binary yanında migration dosyası taşımaya gerek kalmaz.
// Kullanım: fs.Sub(EmbeddedMigrations, "migrations")
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS
