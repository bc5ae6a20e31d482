// Package usagelog records hook usage events to an append-only text log
// with size-bounded rotation.
//
// Each entry is one line of the form "<ISO-8601 timestamp> | <description>".
// When the log grows past its size threshold the next append first moves it
// to a single backup file (default suffix ".old"), overwriting any previous
// backup, and then starts a fresh log with the new entry.
//
// Recording is best-effort: directory creation, rotation and append failures
// are reported to the diagnostic logger only and never reach the caller.
package usagelog
