package bump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"bumpdeps/internal/ports"
	"bumpdeps/internal/props"
	"bumpdeps/internal/types"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const workspacePattern = "bumpdeps-git-"

// Runner drives one bump across all configured repositories.
// Ledger and Publisher are optional.
type Runner struct {
	Options   types.Options
	Waiter    ports.ArtifactWaiter
	VCS       ports.VersionControl
	Host      ports.CodeHost
	Ledger    ports.Ledger
	Publisher ports.Publisher

	// WorkDir is where repositories are cloned. When empty a temporary directory is created and removed
	// at the end of the run.
	WorkDir string
}

// Run waits for the artifact, then updates every repository in order. A failing repository is logged and
// recorded in the report; it never stops the run. Only a configuration or artifact wait problem makes Run
// return an error, and in that case no repository has been touched.
func (r *Runner) Run(ctx context.Context) (types.Report, error) {
	report := types.Report{
		Key:       r.Options.Key,
		Version:   r.Options.Version,
		StartedAt: timeNow(),
	}
	if err := r.Options.Validate(); err != nil {
		return report, err
	}

	parent := r.WorkDir
	if parent == "" {
		dir, err := os.MkdirTemp("", workspacePattern)
		if err != nil {
			return report, fmt.Errorf("create workspace: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(dir); err != nil {
				log.WithError(err).Warnf("Failed to remove workspace %s", dir)
			}
		}()
		parent = dir
	}

	if err := r.Waiter.Wait(ctx); err != nil {
		return report, err
	}

	for _, repo := range r.Options.Repositories {
		res := r.processRepo(ctx, parent, repo)
		report.Results = append(report.Results, res)
		r.record(ctx, res)
	}

	r.publish(ctx, report)
	return report, nil
}

func (r *Runner) processRepo(ctx context.Context, parent, repo string) types.RepoResult {
	branch := r.Options.BranchName()
	res := types.RepoResult{Repo: repo, Branch: branch}

	pr, reused, err := r.updateRepo(ctx, parent, repo, branch)
	res.FinishedAt = EpochTime()
	if err != nil {
		log.WithError(err).WithField("repo", repo).Errorf("Exception updating repository %s", repo)
		res.Status = types.StatusFailed
		res.Error = err.Error()
		return res
	}
	res.PullRequestURL = pr.HTMLURL
	res.Status = types.StatusCreated
	if reused {
		res.Status = types.StatusReused
	}
	return res
}

func (r *Runner) updateRepo(ctx context.Context, parent, repo, branch string) (ports.PullRequest, bool, error) {
	if err := r.createModifiedBranch(ctx, parent, repo, branch); err != nil {
		return ports.PullRequest{}, false, err
	}
	return r.createPullRequest(ctx, repo, branch)
}

func (r *Runner) createModifiedBranch(ctx context.Context, parent, repo, branch string) error {
	o := r.Options
	root := filepath.Join(parent, repo)
	upstream := o.UpstreamURL(repo)
	log.Infof("Cloning %s to %s", upstream, root)
	wc, err := r.VCS.Clone(ctx, upstream, o.BaseBranch, root)
	if err != nil {
		return err
	}

	if err := r.updatePropertiesFile(filepath.Join(wc.Dir(), o.PropsFile), repo); err != nil {
		return err
	}

	branches, err := wc.Branches()
	if err != nil {
		return err
	}
	if slices.Contains(branches, branch) {
		if err := wc.DeleteBranch(branch); err != nil {
			return err
		}
	}
	if err := wc.CreateBranch(branch); err != nil {
		return err
	}
	if err := wc.CommitAll(o.CommitMessage()); err != nil {
		return err
	}

	fork := o.ForkURL(repo)
	if err := wc.AddRemote(types.ForkRemoteName, fork); err != nil {
		return err
	}
	log.Infof("Force-pushing changes to %s", fork)
	return wc.ForcePush(ctx, types.ForkRemoteName, branch+":"+branch)
}

// updatePropertiesFile fails when the key is missing and when it already holds the version; neither case
// leaves anything worth committing.
func (r *Runner) updatePropertiesFile(path, repo string) error {
	o := r.Options
	ed := props.NewEditor(path)
	out, err := ed.UpdateProperty(o.Key, o.Version)
	if err != nil {
		return fmt.Errorf("read %s's %s: %w", repo, o.PropsFile, err)
	}
	if !out.Matched {
		return types.Err(types.ErrKeyNotFound, nil, "couldn't locate key %s in %s's %s file", o.Key, repo, o.PropsFile)
	}
	if !out.Updated {
		return types.Err(types.ErrAlreadyCurrent, nil, "%s's %s is already set to %s", repo, o.Key, o.Version)
	}
	return ed.Save(out.Lines)
}

// createPullRequest reuses an open pull request labelled with the branch name. The branch was just
// force-pushed, so the existing pull request already shows the new commit.
func (r *Runner) createPullRequest(ctx context.Context, repo, branch string) (ports.PullRequest, bool, error) {
	o := r.Options
	open, err := r.Host.OpenPullRequests(ctx, o.UpstreamOwner, repo)
	if err != nil {
		return ports.PullRequest{}, false, err
	}
	for _, pr := range open {
		if pr.HasLabel(branch) {
			log.Infof("Found existing PR for repo %s: %s", repo, pr.HTMLURL)
			return pr, true, nil
		}
	}

	log.Infof("Creating pull request for repo %s", repo)
	pr, err := r.Host.CreatePullRequest(ctx, o.UpstreamOwner, repo, ports.NewPullRequest{
		Title: o.CommitMessage(),
		Head:  o.RepoOwner + ":" + branch,
		Base:  o.BaseBranch,
		Body:  "",
	})
	if err != nil {
		return ports.PullRequest{}, false, err
	}
	if err := r.Host.AddLabels(ctx, o.UpstreamOwner, repo, pr.Number, branch); err != nil {
		return pr, false, err
	}
	pr.Labels = append(pr.Labels, branch)

	if !o.Reviewers.Empty() {
		err := r.Host.RequestReviewers(ctx, o.UpstreamOwner, repo, pr.Number, o.Reviewers.Users, o.Reviewers.Teams)
		if err != nil {
			return pr, false, err
		}
	}

	log.Infof("Created pull request for %s: %s", repo, pr.HTMLURL)
	return pr, false, nil
}

// record stores the outcome in the ledger. Ledger trouble is logged, it never fails the repository.
func (r *Runner) record(ctx context.Context, res types.RepoResult) {
	if r.Ledger == nil {
		return
	}
	if err := r.Ledger.Record(ctx, r.Options.Key, r.Options.Version, res); err != nil {
		log.WithError(err).WithField("repo", res.Repo).Warn("Failed to record result in ledger")
	}
}

func (r *Runner) publish(ctx context.Context, report types.Report) {
	if r.Publisher == nil || r.Options.SNSTopicArn == "" {
		return
	}
	b, err := json.Marshal(report)
	if err != nil {
		log.WithError(err).Warn("Failed to marshal run report")
		return
	}
	if err := r.Publisher.PublishRaw(ctx, r.Options.SNSTopicArn, b); err != nil {
		log.WithError(err).WithField("snsArn", r.Options.SNSTopicArn).Warn("Failed to publish run report")
		return
	}
	log.WithField("snsArn", r.Options.SNSTopicArn).Info("Run report published")
}
