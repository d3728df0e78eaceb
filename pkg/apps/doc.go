// Package apps defines the application records that feed the graph builder.
//
// # Input Format
//
// Records arrive as a JSON array, typically served as app.json next to the
// rendering surface:
//
//	[
//	  {"appId": "A", "name": "Core", "isPrimary": true},
//	  {"appId": "B", "name": "Billing", "isPrimary": false}
//	]
//
// Exactly one record is expected to be primary. This package only decodes and
// checks individual records; the one-primary rule is a topology constraint
// enforced by [github.com/matzehuels/appgraph/pkg/builder].
//
// # Reading
//
//	records, err := apps.ReadJSON(r)
//	records, err := apps.ImportJSON("app.json")
//
// Decoding failures are reported with the INVALID_FORMAT code, empty or
// malformed identifiers with INVALID_INPUT.
package apps
