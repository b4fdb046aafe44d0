package types

import "time"

// RepoStatus is the final state of a single repository in a run.
type RepoStatus string

const (
	StatusCreated RepoStatus = "pr_created"
	StatusReused  RepoStatus = "pr_reused"
	StatusFailed  RepoStatus = "failed"
)

// RepoResult records what happened to one repository.
type RepoResult struct {
	Repo           string     `json:"repo" dynamodbav:"repo"`
	Status         RepoStatus `json:"status" dynamodbav:"status"`
	Branch         string     `json:"branch" dynamodbav:"branch"`
	PullRequestURL string     `json:"pull_request_url,omitempty" dynamodbav:"pull_request_url"`
	Error          string     `json:"error,omitempty" dynamodbav:"error"`
	FinishedAt     int64      `json:"finished_at" dynamodbav:"finished_at"`
}

func (r RepoResult) Failed() bool {
	return r.Status == StatusFailed
}

// Report summarizes a whole run. Results keep the order of the input repository list.
type Report struct {
	Key       string       `json:"key"`
	Version   string       `json:"version"`
	StartedAt time.Time    `json:"started_at"`
	Results   []RepoResult `json:"results"`
}

// Failed reports whether any repository in the run failed.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Failed() {
			return true
		}
	}
	return false
}

// FailedRepos lists the failed repositories in run order.
func (r Report) FailedRepos() []string {
	var out []string
	for _, res := range r.Results {
		if res.Failed() {
			out = append(out, res.Repo)
		}
	}
	return out
}
