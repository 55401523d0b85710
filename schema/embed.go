// Package schema provides embedded JSON schemas for testsift configuration
// and classification records.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
