package migrations

import _ "embed"

// Schema creates every table used by the PostgreSQL store. It is idempotent.
//
//go:embed schema.sql
var Schema string
