package hosting

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bumpdeps/internal/ports"
	"bumpdeps/internal/types"

	"github.com/google/go-github/v66/github"
	"github.com/klauspost/compress/gzhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	pageSize = 100
	// teamsTTL bounds how long an organization's team listing is reused across repositories.
	teamsTTL = 10 * time.Minute
)

// GitHub implements ports.CodeHost with the GitHub REST API.
type GitHub struct {
	cli   *github.Client
	teams *ttlCache[string, map[string]string]
}

// NewGitHub builds a token-authenticated client. Any apiEndpoint other than the public API becomes the client's
// base URL unchanged, which is how GitHub Enterprise (".../api/v3") is reached.
func NewGitHub(ctx context.Context, token, apiEndpoint string) (*GitHub, error) {
	base := &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	cli := github.NewClient(httpClient)
	endpoint := strings.TrimSuffix(strings.TrimSpace(apiEndpoint), "/")
	if endpoint != "" && endpoint != strings.TrimSuffix(types.DefaultGithubAPIEndpoint, "/") {
		// Used as given; no /api/v3 suffix is appended.
		base, err := url.Parse(endpoint + "/")
		if err != nil || base.Scheme == "" || base.Host == "" {
			return nil, types.Err(types.ErrConfig, err, "github api endpoint %s", apiEndpoint)
		}
		cli.BaseURL = base
	}
	return NewGitHubFromClient(cli), nil
}

// NewGitHubFromClient wraps an already configured go-github client.
func NewGitHubFromClient(cli *github.Client) *GitHub {
	return &GitHub{cli: cli, teams: newTTLCache[string, map[string]string]()}
}

func (g *GitHub) OpenPullRequests(ctx context.Context, owner, repo string) ([]ports.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	var out []ports.PullRequest
	for {
		prs, resp, err := g.cli.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, types.Err(types.ErrHosting, err, "list pull requests of %s/%s", owner, repo)
		}
		for _, pr := range prs {
			out = append(out, toPullRequest(pr))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func (g *GitHub) CreatePullRequest(ctx context.Context, owner, repo string, np ports.NewPullRequest) (ports.PullRequest, error) {
	pr, _, err := g.cli.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(np.Title),
		Head:  github.String(np.Head),
		Base:  github.String(np.Base),
		Body:  github.String(np.Body),
	})
	if err != nil {
		return ports.PullRequest{}, types.Err(types.ErrHosting, err, "create pull request on %s/%s", owner, repo)
	}
	return toPullRequest(pr), nil
}

func (g *GitHub) AddLabels(ctx context.Context, owner, repo string, number int, labels ...string) error {
	_, _, err := g.cli.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	if err != nil {
		return types.Err(types.ErrHosting, err, "label %s/%s#%d", owner, repo, number)
	}
	return nil
}

func (g *GitHub) RequestReviewers(ctx context.Context, owner, repo string, number int, users, teams []string) error {
	if len(users) > 0 {
		_, _, err := g.cli.PullRequests.RequestReviewers(ctx, owner, repo, number, github.ReviewersRequest{Reviewers: users})
		if err != nil {
			return types.Err(types.ErrHosting, err, "request reviewers %v on %s/%s#%d", users, owner, repo, number)
		}
	}
	if len(teams) > 0 {
		slugs, err := g.teamSlugs(ctx, owner, teams)
		if err != nil {
			return err
		}
		_, _, err = g.cli.PullRequests.RequestReviewers(ctx, owner, repo, number, github.ReviewersRequest{TeamReviewers: slugs})
		if err != nil {
			return types.Err(types.ErrHosting, err, "request team reviewers %v on %s/%s#%d", teams, owner, repo, number)
		}
	}
	return nil
}

// teamSlugs resolves team names to slugs within org. A name that is already a slug resolves to itself.
func (g *GitHub) teamSlugs(ctx context.Context, org string, names []string) ([]string, error) {
	byName, err := g.orgTeams(ctx, org)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(names))
	for _, name := range names {
		slug, ok := byName[name]
		if !ok {
			return nil, types.Err(types.ErrHosting, types.ErrNotFound, "team %s in organization %s", name, org)
		}
		log.WithFields(log.Fields{"team": name, "slug": slug}).Debug("Resolved team")
		slugs = append(slugs, slug)
	}
	return slugs, nil
}

// orgTeams maps every team name and slug of org to its slug. Listings are cached since every repository
// in a run usually asks for the same teams.
func (g *GitHub) orgTeams(ctx context.Context, org string) (map[string]string, error) {
	if byName, ok := g.teams.get(org); ok {
		return byName, nil
	}
	byName := make(map[string]string)
	opts := &github.ListOptions{PerPage: pageSize}
	for {
		teams, resp, err := g.cli.Teams.ListTeams(ctx, org, opts)
		if err != nil {
			return nil, types.Err(types.ErrHosting, err, "list teams of %s", org)
		}
		for _, t := range teams {
			byName[t.GetName()] = t.GetSlug()
			byName[t.GetSlug()] = t.GetSlug()
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	g.teams.set(org, byName, teamsTTL)
	return byName, nil
}

func toPullRequest(pr *github.PullRequest) ports.PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}
	return ports.PullRequest{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		Labels:  labels,
	}
}
