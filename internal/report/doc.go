// Package report turns a user's transactions into the figures shown on the
// dashboard and handed to the assistant: range resolution, filtering, time
// bucketing, aggregation, charts and the assistant context string.
//
// Everything here is pure. Callers supply "now" and the transaction list,
// and no function mutates its input, so the package is safe for concurrent
// use from request handlers and the CLI alike.
package report
