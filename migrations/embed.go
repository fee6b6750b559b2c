package migrations

import "embed"

// Server holds the API server schema.
//
//go:embed server/*.sql
var Server embed.FS

// Prefs holds the schema of the local preference store.
//
//go:embed prefs/*.sql
var Prefs embed.FS

const (
	ServerDir = "server"
	PrefsDir  = "prefs"
)
