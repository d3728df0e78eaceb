// Package source fetches the application records that feed the builder.
//
// A [Source] is anything that can produce a record array: a remote JSON
// document ([HTTP]), a local file ([File]) or records already in memory
// ([Static]). [Open] picks the right one for a location string:
//
//	src, err := source.Open("https://example.com/app.json", source.Options{Retries: 3})
//	records, err := src.Fetch(ctx)
//
// Fetch failures are surfaced to the caller, never swallowed. A non-2xx
// response is a FETCH_FAILED error carrying the status code (see
// [errors.FetchError]); transport failures are NETWORK_ERROR or TIMEOUT; a
// body that is not a record array is INVALID_FORMAT. Only [HTTP] retries, and
// only for transport failures and retryable statuses.
//
// [errors.FetchError]: github.com/matzehuels/appgraph/pkg/errors#FetchError
package source
