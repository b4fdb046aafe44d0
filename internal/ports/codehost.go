package ports

import "context"

// PullRequest is the subset of a hosted pull request the bump run cares about.
type PullRequest struct {
	Number  int
	HTMLURL string
	Labels  []string
}

// HasLabel reports whether the pull request carries the given label.
func (p PullRequest) HasLabel(name string) bool {
	for _, l := range p.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// NewPullRequest describes a pull request to open. Head is "<owner>:<branch>".
type NewPullRequest struct {
	Title string
	Head  string
	Base  string
	Body  string
}

// CodeHost is the remote repository hosting API.
type CodeHost interface {
	// OpenPullRequests lists every open pull request of owner/repo.
	OpenPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error)

	CreatePullRequest(ctx context.Context, owner, repo string, pr NewPullRequest) (PullRequest, error)

	AddLabels(ctx context.Context, owner, repo string, number int, labels ...string) error

	// RequestReviewers asks users (by login) and teams (by name, within owner's organization) for review.
	RequestReviewers(ctx context.Context, owner, repo string, number int, users, teams []string) error
}
