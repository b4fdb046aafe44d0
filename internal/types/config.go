package types

import (
	"fmt"
	"strings"
)

const (
	// RefPrefix is the prefix every release ref must carry. What follows it is the version.
	RefPrefix = "refs/tags/v"

	GithubOAuthTokenEnvName     = "GITHUB_OAUTH"
	MavenRepoUsernameEnvName    = "NEXUS_USERNAME"
	MavenRepoPasswordEnvName    = "NEXUS_PASSWORD"
	DefaultBaseBranch           = "master"
	DefaultPropertiesFile       = "gradle.properties"
	DefaultGithubURL            = "https://github.com"
	DefaultGithubAPIEndpoint    = "https://api.github.com"
	DefaultGitAuthorName        = "bumpdeps"
	DefaultGitAuthorEmail       = "bumpdeps@users.noreply.github.com"
	TeamReviewerPrefix          = "team:"
	ForkRemoteName              = "userFork"
	CredentialsIgnoredUsername  = "ignored-username"
	AutobumpBranchNameTemplate  = "autobump-%s-%s"
	AutobumpCommitTitleTemplate = "chore(dependencies): Autobump %s"
)

// Options is the fully resolved configuration of one bump run.
// Version is derived from the release ref (see ParseRef); everything else maps one-to-one onto a CLI flag,
// a YAML config entry or an environment variable.
// MavenRepositoryURL, GroupID and ArtifactID are all optional; when any of them is blank the run falls back
// to a fixed sleep instead of polling for the artifact.
type Options struct {
	Version       string    `yaml:"-" json:"version"`
	Key           string    `yaml:"key" json:"key"`
	Repositories  []string  `yaml:"repositories" json:"repositories"`
	RepoOwner     string    `yaml:"repo_owner" json:"repo_owner"`
	UpstreamOwner string    `yaml:"upstream_owner" json:"upstream_owner"`
	Reviewers     Reviewers `yaml:"-" json:"reviewers"`
	BaseBranch    string    `yaml:"base_branch" json:"base_branch"`
	PropsFile     string    `yaml:"properties_file" json:"properties_file"`
	OAuthToken    string    `yaml:"-" json:"-"`

	MavenRepositoryURL string `yaml:"maven_repository_url" json:"maven_repository_url,omitempty"`
	MavenUsername      string `yaml:"-" json:"-"`
	MavenPassword      string `yaml:"-" json:"-"`
	GroupID            string `yaml:"group_id" json:"group_id,omitempty"`
	ArtifactID         string `yaml:"artifact_id" json:"artifact_id,omitempty"`

	GithubURL         string `yaml:"github_url" json:"github_url"`
	GithubAPIEndpoint string `yaml:"github_api_endpoint" json:"github_api_endpoint"`

	GitAuthorName  string `yaml:"git_author_name" json:"git_author_name"`
	GitAuthorEmail string `yaml:"git_author_email" json:"git_author_email"`

	ReportFile  string `yaml:"report_file" json:"report_file,omitempty"`
	SNSTopicArn string `yaml:"sns_topic_arn" json:"sns_topic_arn,omitempty"`
}

// Reviewers splits the requested pull request reviewers into users and teams.
type Reviewers struct {
	Users []string `json:"users,omitempty"`
	Teams []string `json:"teams,omitempty"`
}

func (r Reviewers) Empty() bool {
	return len(r.Users) == 0 && len(r.Teams) == 0
}

// ParseRef validates a release ref and returns the version it names.
func ParseRef(ref string) (string, error) {
	if !strings.HasPrefix(ref, RefPrefix) {
		return "", Err(ErrConfig, nil, "ref '%s' is not a valid release ref", ref)
	}
	return strings.TrimPrefix(ref, RefPrefix), nil
}

// ParseReviewers parses a comma-separated reviewer list. Entries prefixed with "team:" become team reviewers.
// Blank entries are dropped, duplicates collapse onto their first occurrence.
func ParseReviewers(s string) Reviewers {
	var r Reviewers
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		if strings.HasPrefix(part, TeamReviewerPrefix) {
			r.Teams = append(r.Teams, strings.TrimPrefix(part, TeamReviewerPrefix))
		} else {
			r.Users = append(r.Users, part)
		}
	}
	return r
}

// SplitList splits a comma-separated list, trimming entries and dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// BranchName is the branch the bump is pushed to. It doubles as the label marking the pull request.
func (o Options) BranchName() string {
	return fmt.Sprintf(AutobumpBranchNameTemplate, o.Key, o.BaseBranch)
}

func (o Options) CommitMessage() string {
	return fmt.Sprintf(AutobumpCommitTitleTemplate, o.Key)
}

// WaitsForArtifact reports whether enough coordinates are configured to poll the artifact repository.
func (o Options) WaitsForArtifact() bool {
	return strings.TrimSpace(o.MavenRepositoryURL) != "" &&
		strings.TrimSpace(o.GroupID) != "" &&
		strings.TrimSpace(o.ArtifactID) != ""
}

// UpstreamURL is the clone URL of a repository in the upstream owner.
func (o Options) UpstreamURL(repo string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(o.GithubURL, "/"), o.UpstreamOwner, repo)
}

// ForkURL is the push URL of a repository in the fork owner.
func (o Options) ForkURL(repo string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(o.GithubURL, "/"), o.RepoOwner, repo)
}

func (o Options) Validate() error {
	if o.Version == "" {
		return Err(ErrConfig, nil, "ref is required")
	}
	if strings.TrimSpace(o.Key) == "" {
		return Err(ErrConfig, nil, "key is required")
	}
	if len(o.Repositories) == 0 {
		return Err(ErrConfig, nil, "repositories is required")
	}
	if o.RepoOwner == "" {
		return Err(ErrConfig, nil, "repo-owner is required")
	}
	if o.UpstreamOwner == "" {
		return Err(ErrConfig, nil, "upstream-owner is required")
	}
	if o.BaseBranch == "" {
		return Err(ErrConfig, nil, "base-branch must not be empty")
	}
	if o.PropsFile == "" {
		return Err(ErrConfig, nil, "properties-file must not be empty")
	}
	if o.OAuthToken == "" {
		return Err(ErrConfig, nil,
			"a GitHub OAuth token must be provided in the %s environment variable", GithubOAuthTokenEnvName)
	}
	return nil
}
