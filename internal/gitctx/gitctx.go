// Package gitctx implements the git-context hook. At session start it prints
// the current branch, the number of uncommitted files and the most recent
// commits, so the assistant begins with the repository's recent history.
package gitctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
	"golang.org/x/sync/errgroup"

	"github.com/dg-vibecoding/vibehooks/internal/hook"
	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Name is the hook's CLI name.
const Name = "git-context"

// Defaults.
const (
	DefaultLogCount = 20
	DefaultTimeout  = 5 * time.Second
)

// DetachedBranch is reported when HEAD does not point at a branch.
const DetachedBranch = "detached"

// ErrNotRepository is returned when dir is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Config controls what is collected.
type Config struct {
	// Dir is where the repository search starts. It walks up.
	Dir string
	// LogCount is how many commits to list.
	LogCount int
	// Timeout bounds each query.
	Timeout time.Duration
}

// Snapshot is the collected repository state.
type Snapshot struct {
	Branch      string
	Uncommitted int
	Commits     []string
}

// Context is the git-context hook.
type Context struct {
	cfg    Config
	logger *slog.Logger
}

// New creates the hook. Zero values use the defaults.
func New(cfg Config, logger *slog.Logger) *Context {
	if cfg.LogCount <= 0 {
		cfg.LogCount = DefaultLogCount
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{cfg: cfg, logger: logger}
}

func (c *Context) Name() string { return Name }

func (c *Context) Event() hook.Event { return hook.SessionStart }

func (c *Context) Matcher() string { return "" }

// Handle prints the git context block. Outside a repository it prints
// nothing.
func (c *Context) Handle(ctx context.Context, in *hook.Input, out *output.Writer) hook.Result {
	dir := c.cfg.Dir
	if dir == "" {
		dir = in.Cwd
	}
	if dir == "" {
		dir = "."
	}

	snap, err := c.Collect(ctx, dir)
	if err != nil {
		c.logger.Debug("git context skipped", "dir", dir, "error", err)
		return hook.Allow()
	}

	out.Raw(Format(snap))
	return hook.Allow()
}

// Collect gathers the snapshot for the repository containing dir. Queries run
// concurrently and a query that fails or times out leaves its field empty.
func (c *Context) Collect(ctx context.Context, dir string) (Snapshot, error) {
	if _, err := open(dir); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		branch, err := withDeadline(gctx, c.cfg.Timeout, func() (string, error) { return currentBranch(dir) })
		if err != nil {
			c.logger.Debug("branch query failed", "error", err)
		}
		snap.Branch = branch
		return nil // Don't fail the group
	})

	g.Go(func() error {
		n, err := withDeadline(gctx, c.cfg.Timeout, func() (int, error) { return uncommitted(dir) })
		if err != nil {
			c.logger.Debug("status query failed", "error", err)
		}
		snap.Uncommitted = n
		return nil
	})

	g.Go(func() error {
		commits, err := withDeadline(gctx, c.cfg.Timeout, func() ([]string, error) { return recentCommits(dir, c.cfg.LogCount) })
		if err != nil {
			c.logger.Debug("log query failed", "error", err)
		}
		snap.Commits = commits
		return nil
	})

	_ = g.Wait()

	if snap.Branch == "" {
		snap.Branch = DetachedBranch
	}
	return snap, nil
}

// Format renders the snapshot as the block printed to the host.
func Format(s Snapshot) string {
	var sb strings.Builder
	sb.WriteString("\n=== Git Context ===\n")
	fmt.Fprintf(&sb, "Branch: %s\n", s.Branch)
	if s.Uncommitted > 0 {
		fmt.Fprintf(&sb, "Uncommitted: %d files\n", s.Uncommitted)
	}
	fmt.Fprintf(&sb, "\nRecent commits:\n%s\n", strings.Join(s.Commits, "\n"))
	sb.WriteString("=================\n")
	return sb.String()
}

// withDeadline runs fn with a deadline. go-git calls are not cancellable, so on
// timeout the result is abandoned and the zero value returned.
func withDeadline[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// open finds the repository containing dir. Each query opens its own handle
// so they share no state.
func open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// currentBranch returns the short branch name, or "" for a detached HEAD.
// An unborn branch (no commits yet) is reported by the name HEAD points to.
func currentBranch(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			ref, refErr := repo.Storer.Reference(plumbing.HEAD)
			if refErr == nil && ref.Type() == plumbing.SymbolicReference {
				return ref.Target().Short(), nil
			}
		}
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	if head.Name() == plumbing.HEAD {
		return "", nil
	}
	return head.Name().Short(), nil
}

// uncommitted counts files that are staged, modified or untracked.
func uncommitted(dir string) (int, error) {
	repo, err := open(dir)
	if err != nil {
		return 0, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return 0, fmt.Errorf("getting status: %w", err)
	}

	n := 0
	for _, fs := range status {
		if fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified {
			n++
		}
	}
	return n, nil
}

// recentCommits lists up to n commits reachable from HEAD, newest first,
// as "[<short hash>] <YYYY-MM-DD> <subject>".
func recentCommits(dir string, n int) ([]string, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	var lines []string
	err = iter.ForEach(func(c *object.Commit) error {
		if len(lines) >= n {
			return storer.ErrStop
		}
		lines = append(lines, FormatCommit(c))
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return lines, fmt.Errorf("walking log: %w", err)
	}
	return lines, nil
}

// FormatCommit renders one log line. The date is the author date in the
// author's own time zone.
func FormatCommit(c *object.Commit) string {
	hash := c.Hash.String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return fmt.Sprintf("[%s] %s %s", hash, c.Author.When.Format("2006-01-02"), strings.TrimSpace(subject))
}
