package vcs

import (
	"context"
	"errors"
	"time"

	"bumpdeps/internal/ports"
	"bumpdeps/internal/types"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	log "github.com/sirupsen/logrus"
)

// Git implements ports.VersionControl on top of go-git.
type Git struct {
	auth   transport.AuthMethod
	author object.Signature
}

// NewGit authenticates every network operation with the OAuth token as the basic-auth password.
// Hosting services ignore the username in that case.
func NewGit(token, authorName, authorEmail string) *Git {
	var auth transport.AuthMethod
	if token != "" {
		auth = &githttp.BasicAuth{Username: types.CredentialsIgnoredUsername, Password: token}
	}
	return &Git{
		auth:   auth,
		author: object.Signature{Name: authorName, Email: authorEmail},
	}
}

func (g *Git) Clone(ctx context.Context, url, branch, dir string) (ports.Repository, error) {
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           url,
		Auth:          g.auth,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	})
	if err != nil {
		return nil, types.Err(types.ErrVCS, err, "clone %s (%s)", url, branch)
	}
	return &Repository{repo: repo, dir: dir, auth: g.auth, author: g.author}, nil
}

// Repository implements ports.Repository for a go-git working copy.
type Repository struct {
	repo   *git.Repository
	dir    string
	auth   transport.AuthMethod
	author object.Signature
}

func (r *Repository) Dir() string {
	return r.dir
}

func (r *Repository) Branches() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, types.Err(types.ErrVCS, err, "list branches")
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, types.Err(types.ErrVCS, err, "list branches")
	}
	return names, nil
}

func (r *Repository) DeleteBranch(name string) error {
	if err := r.repo.Storer.RemoveReference(plumbing.NewBranchReferenceName(name)); err != nil {
		return types.Err(types.ErrVCS, err, "delete branch %s", name)
	}
	// The branch may have no config section; that is fine.
	if err := r.repo.DeleteBranch(name); err != nil && !errors.Is(err, git.ErrBranchNotFound) {
		return types.Err(types.ErrVCS, err, "delete branch config %s", name)
	}
	return nil
}

func (r *Repository) CreateBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return types.Err(types.ErrVCS, err, "open worktree")
	}
	err = wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
		Keep:   true,
	})
	if err != nil {
		return types.Err(types.ErrVCS, err, "checkout -b %s", name)
	}
	return nil
}

func (r *Repository) CommitAll(message string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return types.Err(types.ErrVCS, err, "open worktree")
	}
	author := r.author
	author.When = time.Now()
	hash, err := wt.Commit(message, &git.CommitOptions{All: true, Author: &author})
	if err != nil {
		return types.Err(types.ErrVCS, err, "commit")
	}
	log.WithField("commit", hash.String()).Debug("Committed changes")
	return nil
}

func (r *Repository) AddRemote(name, url string) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	if err != nil {
		return types.Err(types.ErrVCS, err, "add remote %s", name)
	}
	return nil
}

// ForcePush accepts short refspecs ("src:dst") and expands both sides to refs/heads/.
func (r *Repository) ForcePush(ctx context.Context, remote, refspec string) error {
	spec := expandRefSpec(refspec)
	if err := spec.Validate(); err != nil {
		return types.Err(types.ErrVCS, err, "refspec %s", refspec)
	}
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       r.auth,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return types.Err(types.ErrVCS, err, "push %s to %s", refspec, remote)
	}
	return nil
}
