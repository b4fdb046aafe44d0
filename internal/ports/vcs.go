package ports

import "context"

// VersionControl clones repositories. Credentials are owned by the implementation.
type VersionControl interface {
	// Clone checks out branch of the repository at url into dir.
	Clone(ctx context.Context, url, branch, dir string) (Repository, error)
}

// Repository is a local working copy.
type Repository interface {
	// Dir is the root of the working tree.
	Dir() string

	// Branches lists the short names of the local branches.
	Branches() ([]string, error)

	// DeleteBranch force-deletes a local branch.
	DeleteBranch(name string) error

	// CreateBranch creates a branch at HEAD and checks it out.
	CreateBranch(name string) error

	// CommitAll stages every tracked modification and commits it.
	CommitAll(message string) error

	AddRemote(name, url string) error

	// ForcePush pushes refspec (e.g. "branch:branch") to the named remote, overwriting what is there.
	ForcePush(ctx context.Context, remote, refspec string) error
}
