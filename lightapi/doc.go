// Package lightapi is a client for the vendor's cloud HTTP API for networked
// lights.
//
// A Client signs every request with a Bearer token derived from the account's
// API key, formats endpoint templates such as "lights/{}/state", encodes the
// request body, and normalizes the response: the body is parsed as JSON,
// non-2xx statuses become *APIError, and by default the first element of a
// "results" list is returned.
//
// The scheduling mode is fixed when the client is built. A blocking client
// runs each exchange on the caller's goroutine. A concurrent client queues
// exchanges on a pool of MaxConcurrentRequests workers so that fan-out across
// many devices stays under the vendor's rate limits:
//
//	client, err := lightapi.New(lightapi.Config{APIKey: key, Concurrent: true})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	pending := make([]*lightapi.Pending, 0, len(selectors))
//	for _, selector := range selectors {
//		pending = append(pending, client.Submit(ctx, http.MethodPut, "lights/{}/state",
//			[]string{selector}, lightapi.WithArgs(lightapi.Arg{Name: "power", Value: "on"})))
//	}
//
//	results, err := lightapi.WaitAll(ctx, pending...)
package lightapi
