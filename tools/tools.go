//go:build tools

package tools

// This file tracks tool dependencies for reproducible builds.
// goose runs the embedded migrations by hand:
//   go run github.com/pressly/goose/v3/cmd/goose -dir internal/adapters/postgres/migrations postgres "$DATABASE_URL" status
// Run `go mod tidy` after adding/removing tools here.

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
