// Package migrations embeds the goose SQL migrations of both services.
package migrations

import "embed"

//go:embed users/*.sql tasks/*.sql
var Migrations embed.FS

// Set names one service's migration directory and its goose version table.
// The two services may share a database, so each keeps its own table.
type Set struct {
	Dir   string
	Table string
}

var (
	Users = Set{Dir: "users", Table: "goose_users_version"}
	Tasks = Set{Dir: "tasks", Table: "goose_tasks_version"}
)
