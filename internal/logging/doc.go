// Package logging provides opt-in diagnostic logging for vibehooks.
//
// Hooks write their user-facing feedback to stderr, which the host relays to
// the assistant, so diagnostics never go there by default. With --debug (or
// logging.file set) structured JSON logs are written to a rotating file,
// .claude/vibehooks-debug.log unless configured otherwise.
package logging
