package content

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitFetcher implements Fetcher over local repository mirrors, laid out
// as <root>/<owner>/<repo> (working copy) or <root>/<owner>/<repo>.git (bare).
// Files are read from committed history, never from the working tree.
type GitFetcher struct {
	root string
	rev  string
}

// NewGitFetcher creates a fetcher over mirrors under root.
// rev is any revision go-git can resolve ("HEAD", a branch, a tag, a
// commit hash); empty means HEAD.
func NewGitFetcher(root, rev string) (*GitFetcher, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("mirror root is required")
	}
	if rev == "" {
		rev = "HEAD"
	}
	return &GitFetcher{root: root, rev: rev}, nil
}

// GetContent implements Fetcher.
func (f *GitFetcher) GetContent(ctx context.Context, owner, repo, filePath string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := f.open(owner, repo)
	if err != nil {
		return nil, err
	}

	hash, err := r.ResolveRevision(plumbing.Revision(f.rev))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Unborn branch or unknown ref: nothing is committed there.
			return nil, fmt.Errorf("%w: %s/%s@%s", ErrNotFound, owner, repo, f.rev)
		}
		return nil, fmt.Errorf("resolve %s in %s/%s: %w", f.rev, owner, repo, err)
	}

	commit, err := r.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s in %s/%s: %w", hash, owner, repo, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("read tree %s in %s/%s: %w", hash, owner, repo, err)
	}

	cleanPath := path.Clean(strings.TrimPrefix(filePath, "/"))
	if _, err := tree.Tree(cleanPath); err == nil {
		return nil, fmt.Errorf("%w: %s/%s:%s", ErrIsDirectory, owner, repo, filePath)
	}

	file, err := tree.File(cleanPath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s/%s:%s", ErrNotFound, owner, repo, filePath)
		}
		return nil, fmt.Errorf("read %s/%s:%s: %w", owner, repo, filePath, err)
	}

	data, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("read blob %s/%s:%s: %w", owner, repo, filePath, err)
	}

	return &File{
		Path: cleanPath,
		SHA:  file.Hash.String(),
		Data: []byte(data),
	}, nil
}

func (f *GitFetcher) open(owner, repo string) (*git.Repository, error) {
	for _, name := range []string{owner, repo} {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("%w: invalid repository %s/%s", ErrNotFound, owner, repo)
		}
	}

	base := filepath.Join(f.root, owner, repo)
	for _, dir := range []string{base, base + ".git"} {
		r, err := git.PlainOpen(dir)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("open %s: %w", dir, err)
		}
	}

	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, owner, repo)
}
