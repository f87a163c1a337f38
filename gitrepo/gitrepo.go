package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"repolens/logger"
	"repolens/utils"
)

// ErrAcquisition wraps failures to obtain a working copy of the repository.
// These are fatal: the pipeline never starts without a repository.
var ErrAcquisition = errors.New("repository acquisition failed")

type Options struct {
	CloneDepth   int
	CloneTimeout time.Duration
}

// Repo is the version-control collaborator: it owns a working copy (possibly
// a temporary clone) and answers tracked-file, authorship, and content
// queries against it.
type Repo struct {
	input      string
	root       string
	remote     bool
	tempDir    string
	authorOnce sync.Once
	authorIx   *authorshipIndex
}

func isRemoteURL(input string) bool {
	return strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "git@")
}

// Open clones a remote repository into a temporary directory or resolves a
// local path, then verifies it is a git work tree.
func Open(ctx context.Context, input string, opts Options) (*Repo, error) {
	if opts.CloneDepth <= 0 {
		opts.CloneDepth = 100
	}
	if opts.CloneTimeout <= 0 {
		opts.CloneTimeout = 300 * time.Second
	}

	r := &Repo{input: input, remote: isRemoteURL(input)}

	if r.remote {
		tempDir, err := os.MkdirTemp("", "repolens-")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAcquisition, err)
		}
		r.tempDir = tempDir
		r.root = tempDir

		logger.Infof("Cloning repository: %s", input)
		cloneCtx, cancel := context.WithTimeout(ctx, opts.CloneTimeout)
		defer cancel()
		cmd := exec.CommandContext(cloneCtx, "git", "clone", "--depth", fmt.Sprint(opts.CloneDepth), input, tempDir)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			r.Cleanup()
			if cloneCtx.Err() == context.DeadlineExceeded {
				return nil, fmt.Errorf("%w: clone timed out after %s", ErrAcquisition, opts.CloneTimeout)
			}
			return nil, fmt.Errorf("%w: clone failed: %s", ErrAcquisition, strings.TrimSpace(stderr.String()))
		}
		logger.Info("Cloned successfully")
	} else {
		root, err := filepath.Abs(expandHome(input))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAcquisition, err)
		}
		r.root = root
	}

	if !r.isGitRepository() {
		r.Cleanup()
		return nil, fmt.Errorf("%w: not a git repository: %s", ErrAcquisition, input)
	}
	return r, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// URL returns the original repository input (URL or local path).
func (r *Repo) URL() string {
	return r.input
}

// Root returns the working-copy root directory.
func (r *Repo) Root() string {
	return r.root
}

// IsRemote reports whether the repository was cloned from a remote URL.
func (r *Repo) IsRemote() bool {
	return r.remote
}

// Cleanup removes the temporary clone directory, if any.
func (r *Repo) Cleanup() {
	if r.tempDir == "" {
		return
	}
	if err := os.RemoveAll(r.tempDir); err != nil {
		logger.Warnf("Failed to remove temp dir %s: %v", r.tempDir, err)
		return
	}
	r.tempDir = ""
	logger.Debug("Cleaned up temporary clone")
}

func (r *Repo) isGitRepository() bool {
	_, err := os.Stat(filepath.Join(r.root, ".git"))
	return err == nil
}

// runGit executes a git subcommand in the repository root and returns its
// trimmed stdout. Failures and timeouts yield an empty string, matching the
// best-effort contract of every caller.
func (r *Repo) runGit(ctx context.Context, timeout time.Duration, args ...string) string {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		logger.Warn("git executable not found in PATH")
		return ""
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, gitPath, args...)
	cmd.Dir = r.root
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		logger.Debugf("git %s failed: %v", strings.Join(args, " "), err)
		return ""
	}
	return strings.TrimSpace(out.String())
}

// FileCandidate is one tracked file offered to the filtering pipeline.
type FileCandidate struct {
	Path string // repository-relative, slash-separated
	Size int64  // raw content length in bytes
}

// ListTrackedFiles returns the repository's tracked files. Paths reported by
// git but missing on disk (deleted, submodule stubs) are dropped, as are
// paths resolving outside the working copy.
func (r *Repo) ListTrackedFiles(ctx context.Context) ([]FileCandidate, error) {
	out := r.runGit(ctx, 60*time.Second, "ls-files")
	if out == "" {
		return nil, nil
	}
	var files []FileCandidate
	for _, line := range strings.Split(out, "\n") {
		rel := strings.TrimSpace(line)
		if rel == "" {
			continue
		}
		abs := filepath.Join(r.root, filepath.FromSlash(rel))
		if !utils.IsPathWithin(abs, r.root) {
			logger.Warnf("Skipping tracked path outside repository: %s", rel)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileCandidate{Path: filepath.ToSlash(rel), Size: info.Size()})
	}
	logger.Infof("Found %d tracked files", len(files))
	return files, nil
}

// IgnoreRules returns the raw pattern lines of the repository's root
// .gitignore, or nil when the file is absent.
func (r *Repo) IgnoreRules() []string {
	data, err := os.ReadFile(filepath.Join(r.root, ".gitignore"))
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

func (r *Repo) abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}
