// Package execxtest provides a scripted execx.Runner for tests.
package execxtest

import (
	"context"
	"sync"

	"github.com/dg-vibecoding/vibehooks/internal/execx"
)

// Response is what the fake returns for one call.
type Response struct {
	Output execx.Output
	Err    error
}

// Runner records every command and replies with Response, or with the
// result of Func when set.
type Runner struct {
	mu       sync.Mutex
	Response Response
	Func     func(ctx context.Context, cmd execx.Command) (execx.Output, error)
	Calls    []execx.Command
}

// Run implements execx.Runner.
func (r *Runner) Run(ctx context.Context, cmd execx.Command) (execx.Output, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, cmd)
	fn, resp := r.Func, r.Response
	r.mu.Unlock()

	if fn != nil {
		return fn(ctx, cmd)
	}
	return resp.Output, resp.Err
}

// Called reports how many commands were run.
func (r *Runner) Called() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Calls)
}

// Last returns the most recent command.
func (r *Runner) Last() execx.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Calls) == 0 {
		return execx.Command{}
	}
	return r.Calls[len(r.Calls)-1]
}
