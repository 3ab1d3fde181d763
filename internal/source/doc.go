// Package source loads item sets for pick's lists.
//
// Three loaders implement Loader:
//
//   - File: newline separated text, re-read on every Load
//   - Static: a fixed set, used for lines piped on stdin
//   - *Client: a JSON list served over HTTP
//
// # Line Format
//
// Each non-blank line is one item. "label<TAB>value" splits on the first tab
// so a friendly label can stand in for the printed value; any other line is
// both label and value. With tail set, ReadLines keeps the last N lines
// through a ring buffer instead of the first N.
//
// # HTTP Format
//
// The endpoint returns either
//
//	{"items": [{"label": "Web", "value": "web-01"}, ...]}
//
// or a bare array of the same entries or of plain strings. Numeric values
// are kept as their decimal text so every key is a string. Requests send
// Accept: application/json and User-Agent: pick/0.1 with a 5s timeout.
// Errors are wrapped with the step that failed ("execute request",
// "api /path returned status N", "decode response").
package source
