// Package hook defines how vibehooks talks to the assistant host.
//
// The host starts one short-lived process per lifecycle event, writes a JSON
// payload to its stdin and reads back the exit code and stderr. Exit code 2
// from a PreToolUse hook blocks the tool call and stderr is shown to the
// model; every other outcome lets the action proceed. Handlers in this
// module fail open: a broken payload, a bad config or a panic never blocks
// the host.
package hook
