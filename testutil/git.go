// Package testutil provides fixtures for tests that need real git
// repositories on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var signature = object.Signature{
	Name:  "Test User",
	Email: "test@test.com",
	When:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
}

// SetupMirror creates <root>/<owner>/<repo> as a git repository whose
// first commit contains files (relative path -> content).
// Returns the repository directory.
func SetupMirror(t *testing.T, root, owner, repo string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(root, owner, repo)
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("git init %s failed: %v", dir, err)
	}

	CommitFiles(t, dir, files, "Initial commit")
	return dir
}

// SetupEmptyMirror creates <root>/<owner>/<repo> with no commits.
func SetupEmptyMirror(t *testing.T, root, owner, repo string) string {
	t.Helper()

	dir := filepath.Join(root, owner, repo)
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("git init %s failed: %v", dir, err)
	}
	return dir
}

// CommitFiles writes files into the working tree of repoDir and commits
// them. Returns the new commit hash.
func CommitFiles(t *testing.T, repoDir string, files map[string]string, message string) string {
	t.Helper()

	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("open %s failed: %v", repoDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree %s failed: %v", repoDir, err)
	}

	if len(files) == 0 {
		files = map[string]string{"README.md": "# Test Repository\n"}
	}

	for path, content := range files {
		fullPath := filepath.Join(repoDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write file %s: %v", path, err)
		}
		if _, err := wt.Add(filepath.ToSlash(path)); err != nil {
			t.Fatalf("git add %s failed: %v", path, err)
		}
	}

	sig := signature
	hash, err := wt.Commit(message, &git.CommitOptions{Author: &sig, Committer: &sig})
	if err != nil {
		t.Fatalf("git commit failed: %v", err)
	}
	return hash.String()
}

// WriteUncommitted writes a file into the working tree without staging it.
func WriteUncommitted(t *testing.T, repoDir, path, content string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// Tag creates a lightweight tag at HEAD.
func Tag(t *testing.T, repoDir, tag string) {
	t.Helper()

	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("open %s failed: %v", repoDir, err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("resolve HEAD failed: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewTagReferenceName(tag), head.Hash())
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("git tag %s failed: %v", tag, err)
	}
}

// HeadSHA returns the commit hash HEAD points at.
func HeadSHA(t *testing.T, repoDir string) string {
	t.Helper()

	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("open %s failed: %v", repoDir, err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("resolve HEAD failed: %v", err)
	}
	return head.Hash().String()
}
