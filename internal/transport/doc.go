// Package transport provides the retrying HTTP client every other
// component uses for network I/O.
//
// Every download step in the pipeline depends on an unreliable remote
// service, so all fetches go through Client, which retries failures
// with exponential backoff per a RetryPolicy:
//
//	client := transport.NewClient(transport.Bounded(5), logger)
//	body, err := client.Get(ctx, pageURL)
//
// A nil attempt cap retries indefinitely:
//
//	client := transport.NewClient(transport.Unbounded(), logger)
//
// When the retry budget is exhausted the last error is surfaced
// wrapped in ErrNetwork, so callers can classify the failure with
// errors.Is.
package transport
