// Package batch provides helpers for MCP tools that act on several
// calendar items in one call.
//
// It parses parameters that accept a single ID, an array of IDs or a JSON
// encoded array, runs an operation per ID and aggregates per-item outcomes
// so partial failures are reported instead of aborting the batch.
package batch
