// Package jsonschema derives JSON Schema documents from Go argument structs.
//
// Tools advertise their input shape to language models as a JSON Schema. The
// schema is generated once, by reflection, from the same struct the tool
// decodes its arguments into, so the advertised shape and the decoded shape
// cannot drift apart.
//
// Field names follow the `json` tag. Two extra tags tune the output:
//
//	description:"free text shown to the model"
//	jsonschema:"required,enum=markdown,enum=text,minimum=1,maximum=10"
//
// A short comma-free description may also be given inline as
// jsonschema:"description=...".
//
// Non-pointer fields without omitempty are required by default.
package jsonschema
