// Package schemas embeds the JSON Schemas for files vitta reads back.
package schemas

import _ "embed"

// TranscriptSchemaJSON is the schema for finance_plan_*.json transcripts.
//
//go:embed transcript.schema.json
var TranscriptSchemaJSON string
