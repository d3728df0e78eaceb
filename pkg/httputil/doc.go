// Package httputil provides the HTTP plumbing shared by the record sources.
//
// # Retry
//
// [Retry] runs an operation with exponential backoff, retrying only errors
// marked with [Retryable]. Everything else fails on the first attempt:
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    if httputil.RetryableStatus(resp.StatusCode) {
//	        return httputil.Retryable(fmt.Errorf("status %d", resp.StatusCode))
//	    }
//	    ...
//	})
//
// Cancelling ctx stops the loop between attempts.
//
// # Clients
//
// [NewClient] returns an *http.Client with a 10 second timeout.
package httputil
