// Package books is the client for the top-books data endpoint.
//
// # Endpoint
//
// A single GET against the configured URL (default
// http://localhost:8000/data/) returns:
//
//	{"data": [{"id": 1, "title": "...", "author": "...", "ranking": 4.5,
//	           "image_url": "...", "amazon_link": "..."}]}
//
// id and ranking may be JSON numbers or strings and are kept verbatim as
// Scalar values. Older payloads carry product_url instead of amazon_link;
// the decoder accepts either.
//
// # Failures
//
// Every failure is a *FetchError matching ErrFetch. Its Stage records where
// the chain broke:
//
//   - request: transport error, cancellation, or timeout
//   - status: any non-2xx response, even with a JSON body
//   - decode: the body is not JSON or a field has the wrong type
//   - validate: the body parsed but the data envelope or an item is
//     malformed (wraps ErrSchema)
//
// # Transport
//
// Requests go through go-retryablehttp. The zero Options value makes one
// attempt with no timeout; retries and a timeout can be enabled through
// config. The request is always bound to the caller's context.
package books
