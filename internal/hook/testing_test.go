package hook

import (
	"context"

	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// stubHandler is a configurable Handler for tests.
type stubHandler struct {
	name    string
	event   Event
	matcher string
	result  Result
	panics  bool
	got     *Input
	message string
}

func (s *stubHandler) Name() string    { return s.name }
func (s *stubHandler) Event() Event    { return s.event }
func (s *stubHandler) Matcher() string { return s.matcher }
func (s *stubHandler) Handle(_ context.Context, in *Input, out *output.Writer) Result {
	s.got = in
	if s.panics {
		panic("boom")
	}
	if s.message != "" {
		out.Line(s.message)
	}
	return s.result
}
