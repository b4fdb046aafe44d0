// Package cmds implements the bumpdeps command line.
package cmds

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bumpdeps/internal/artifact"
	"bumpdeps/internal/bump"
	"bumpdeps/internal/hosting"
	"bumpdeps/internal/ports"
	"bumpdeps/internal/pub"
	"bumpdeps/internal/types"
	"bumpdeps/internal/vcs"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrReposFailed is returned when the run completed but at least one repository could not be bumped.
var ErrReposFailed = errors.New("one or more repositories failed")

type runFunc func(ctx context.Context, o types.Options) (types.Report, error)

type cliFlags struct {
	configPath         string
	ref                string
	key                string
	repositories       string
	repoOwner          string
	upstreamOwner      string
	reviewers          string
	baseBranch         string
	propsFile          string
	mavenRepositoryURL string
	groupID            string
	artifactID         string
	githubURL          string
	githubAPIEndpoint  string
	gitAuthorName      string
	gitAuthorEmail     string
	reportFile         string
	snsTopicArn        string
	logLevel           string
	logJSON            bool
}

// Execute runs the CLI until the bump finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(runBump).ExecuteContext(ctx)
}

func newRootCmd(run runFunc) *cobra.Command {
	f := &cliFlags{}
	cmd := &cobra.Command{
		Use:   "bumpdeps",
		Short: "Bump a dependency version across repositories",
		Long: `bumpdeps waits for a released artifact to be published, then updates a key in each
repository's gradle.properties, force-pushes the change to a fork and opens (or reuses) a
pull request against the upstream repository.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := resolveOptions(cmd.Flags(), f)
			if err != nil {
				return err
			}
			if err := configureLogging(f.logLevel, f.logJSON); err != nil {
				return err
			}
			return execute(cmd.Context(), run, o)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML file providing defaults for any flag (env "+ConfigEnvName+")")
	fl.StringVar(&f.ref, "ref", "", "release ref, e.g. refs/tags/v1.2.3")
	fl.StringVar(&f.key, "key", "", "gradle.properties key to modify")
	fl.StringVar(&f.repositories, "repositories", "", "comma-separated repositories to update")
	fl.StringVar(&f.repoOwner, "repo-owner", "", "owner of the forks the branch is pushed to")
	fl.StringVar(&f.upstreamOwner, "upstream-owner", "", "owner of the upstream repositories")
	fl.StringVar(&f.reviewers, "reviewers", "", "comma-separated reviewers; prefix teams with "+types.TeamReviewerPrefix)
	fl.StringVar(&f.baseBranch, "base-branch", types.DefaultBaseBranch, "branch to clone and target")
	fl.StringVar(&f.propsFile, "properties-file", types.DefaultPropertiesFile, "properties file to edit in each repository")
	fl.StringVar(&f.mavenRepositoryURL, "maven-repository-url", "", "root URL of the Maven repository to poll")
	fl.StringVar(&f.groupID, "group-id", "", "group id of the artifact to wait for")
	fl.StringVar(&f.artifactID, "artifact-id", "", "artifact id of the artifact to wait for")
	fl.StringVar(&f.githubURL, "github-url", types.DefaultGithubURL, "GitHub root URL used to clone and push")
	fl.StringVar(&f.githubAPIEndpoint, "github-api-endpoint", types.DefaultGithubAPIEndpoint, "GitHub API endpoint")
	fl.StringVar(&f.gitAuthorName, "git-author-name", types.DefaultGitAuthorName, "commit author name")
	fl.StringVar(&f.gitAuthorEmail, "git-author-email", types.DefaultGitAuthorEmail, "commit author email")
	fl.StringVar(&f.reportFile, "report-file", "", "write the JSON run report to this file")
	fl.StringVar(&f.snsTopicArn, "sns-topic-arn", "", "publish the JSON run report to this SNS topic")
	fl.StringVar(&f.logLevel, "log-level", getenv("LOG_LEVEL", "info"), "log level")
	fl.BoolVar(&f.logJSON, "log-json", false, "log in JSON format")

	cmd.AddCommand(newHistoryCmd())
	return cmd
}

func execute(ctx context.Context, run runFunc, o types.Options) error {
	report, err := run(ctx, o)
	if o.ReportFile != "" {
		if werr := bump.WriteReport(o.ReportFile, report); werr != nil {
			log.WithError(werr).Errorf("Failed to write report to %s", o.ReportFile)
		}
	}
	if err != nil {
		return err
	}
	if report.Failed() {
		return types.Err(ErrReposFailed, nil, "failed repositories: %s", strings.Join(report.FailedRepos(), ", "))
	}
	return nil
}

// runBump validates before building any adapter, since some of them (the ddb ledger) touch remote resources.
func runBump(ctx context.Context, o types.Options) (types.Report, error) {
	if err := o.Validate(); err != nil {
		return types.Report{}, err
	}
	host, err := hosting.NewGitHub(ctx, o.OAuthToken, o.GithubAPIEndpoint)
	if err != nil {
		return types.Report{}, err
	}
	ledger, err := ledgerFromEnv(ctx)
	if err != nil {
		return types.Report{}, err
	}
	var publisher ports.Publisher
	if o.SNSTopicArn != "" {
		p, err := pub.NewSNSFromEnv(ctx)
		if err != nil {
			return types.Report{}, err
		}
		publisher = p
	}

	r := &bump.Runner{
		Options:   o,
		Waiter:    artifact.NewWaiter(o),
		VCS:       vcs.NewGit(o.OAuthToken, o.GitAuthorName, o.GitAuthorEmail),
		Host:      host,
		Ledger:    ledger,
		Publisher: publisher,
	}
	return r.Run(ctx)
}

func configureLogging(level string, asJSON bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return types.Err(types.ErrConfig, err, "invalid log level %q", level)
	}
	log.SetLevel(lvl)
	if asJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
