package cmds

import (
	"os"
	"strings"

	"bumpdeps/internal/types"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
)

// ConfigEnvName names the YAML config file when --config is not given.
const ConfigEnvName = "BUMPDEPS_CONFIG"

// fileExtras holds the config file entries that are not plain Options fields.
type fileExtras struct {
	Ref       string `yaml:"ref"`
	Reviewers string `yaml:"reviewers"`
	LogLevel  string `yaml:"log_level"`
	LogJSON   bool   `yaml:"log_json"`
}

func defaultOptions() types.Options {
	return types.Options{
		BaseBranch:        types.DefaultBaseBranch,
		PropsFile:         types.DefaultPropertiesFile,
		GithubURL:         types.DefaultGithubURL,
		GithubAPIEndpoint: types.DefaultGithubAPIEndpoint,
		GitAuthorName:     types.DefaultGitAuthorName,
		GitAuthorEmail:    types.DefaultGitAuthorEmail,
	}
}

// loadConfigFile overlays the entries present in the YAML file onto o. Keys missing from the file keep
// their current value.
func loadConfigFile(path string, o *types.Options) (fileExtras, error) {
	var extras fileExtras
	data, err := os.ReadFile(path)
	if err != nil {
		return extras, types.Err(types.ErrConfig, err, "read config file %s", path)
	}
	if err := yaml.Unmarshal(data, o); err != nil {
		return extras, types.Err(types.ErrConfig, err, "parse config file %s", path)
	}
	if err := yaml.Unmarshal(data, &extras); err != nil {
		return extras, types.Err(types.ErrConfig, err, "parse config file %s", path)
	}
	return extras, nil
}

// resolveOptions builds the run options. Precedence, lowest first: built-in defaults, the config file,
// explicitly set flags. Secrets only ever come from the environment.
func resolveOptions(fs *pflag.FlagSet, f *cliFlags) (types.Options, error) {
	o := defaultOptions()
	ref, reviewers := "", ""

	path := f.configPath
	if path == "" {
		path = os.Getenv(ConfigEnvName)
	}
	if path != "" {
		extras, err := loadConfigFile(path, &o)
		if err != nil {
			return o, err
		}
		ref, reviewers = extras.Ref, extras.Reviewers
		if extras.LogLevel != "" && !fs.Changed("log-level") {
			f.logLevel = extras.LogLevel
		}
		if extras.LogJSON && !fs.Changed("log-json") {
			f.logJSON = true
		}
	}

	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("ref", &ref, f.ref)
	set("key", &o.Key, f.key)
	set("repo-owner", &o.RepoOwner, f.repoOwner)
	set("upstream-owner", &o.UpstreamOwner, f.upstreamOwner)
	set("reviewers", &reviewers, f.reviewers)
	set("base-branch", &o.BaseBranch, f.baseBranch)
	set("properties-file", &o.PropsFile, f.propsFile)
	set("maven-repository-url", &o.MavenRepositoryURL, f.mavenRepositoryURL)
	set("group-id", &o.GroupID, f.groupID)
	set("artifact-id", &o.ArtifactID, f.artifactID)
	set("github-url", &o.GithubURL, f.githubURL)
	set("github-api-endpoint", &o.GithubAPIEndpoint, f.githubAPIEndpoint)
	set("git-author-name", &o.GitAuthorName, f.gitAuthorName)
	set("git-author-email", &o.GitAuthorEmail, f.gitAuthorEmail)
	set("report-file", &o.ReportFile, f.reportFile)
	set("sns-topic-arn", &o.SNSTopicArn, f.snsTopicArn)
	if fs.Changed("repositories") {
		o.Repositories = types.SplitList(f.repositories)
	}

	version, err := types.ParseRef(ref)
	if err != nil {
		return o, err
	}
	o.Version = version
	o.Reviewers = types.ParseReviewers(reviewers)
	o.MavenRepositoryURL = strings.TrimSuffix(strings.TrimSpace(o.MavenRepositoryURL), "/")

	o.OAuthToken = os.Getenv(types.GithubOAuthTokenEnvName)
	o.MavenUsername = os.Getenv(types.MavenRepoUsernameEnvName)
	o.MavenPassword = os.Getenv(types.MavenRepoPasswordEnvName)
	return o, nil
}
