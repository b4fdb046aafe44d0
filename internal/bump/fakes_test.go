package bump

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"bumpdeps/internal/ports"
	"bumpdeps/internal/types"
)

type fakeWaiter struct {
	err   error
	calls int
}

func (w *fakeWaiter) Wait(ctx context.Context) error {
	w.calls++
	return w.err
}

// fakeVCS "clones" by writing the configured properties content into the target directory.
type fakeVCS struct {
	files     map[string]string // repo url -> gradle.properties content
	branches  map[string][]string
	cloneErr  map[string]error
	pushErr   map[string]error
	clones    []string
	repos     map[string]*fakeRepo
	propsName string
}

func newFakeVCS() *fakeVCS {
	return &fakeVCS{
		files:     map[string]string{},
		branches:  map[string][]string{},
		cloneErr:  map[string]error{},
		pushErr:   map[string]error{},
		repos:     map[string]*fakeRepo{},
		propsName: types.DefaultPropertiesFile,
	}
}

func (v *fakeVCS) Clone(ctx context.Context, url, branch, dir string) (ports.Repository, error) {
	v.clones = append(v.clones, url+"@"+branch)
	if err := v.cloneErr[url]; err != nil {
		return nil, err
	}
	content, ok := v.files[url]
	if !ok {
		return nil, errors.New("repository not found")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, v.propsName), []byte(content), 0o644); err != nil {
		return nil, err
	}
	repo := &fakeRepo{
		dir:      dir,
		branches: append([]string{branch}, v.branches[url]...),
		remotes:  map[string]string{},
		pushErr:  v.pushErr[url],
	}
	v.repos[url] = repo
	return repo, nil
}

type fakeRepo struct {
	dir      string
	branches []string
	deleted  []string
	current  string
	commits  []string
	remotes  map[string]string
	pushes   []string
	pushErr  error
}

func (r *fakeRepo) Dir() string { return r.dir }

func (r *fakeRepo) Branches() ([]string, error) { return r.branches, nil }

func (r *fakeRepo) DeleteBranch(name string) error {
	r.deleted = append(r.deleted, name)
	out := r.branches[:0:0]
	for _, b := range r.branches {
		if b != name {
			out = append(out, b)
		}
	}
	r.branches = out
	return nil
}

func (r *fakeRepo) CreateBranch(name string) error {
	for _, b := range r.branches {
		if b == name {
			return errors.New("branch already exists")
		}
	}
	r.branches = append(r.branches, name)
	r.current = name
	return nil
}

func (r *fakeRepo) CommitAll(message string) error {
	r.commits = append(r.commits, message)
	return nil
}

func (r *fakeRepo) AddRemote(name, url string) error {
	r.remotes[name] = url
	return nil
}

func (r *fakeRepo) ForcePush(ctx context.Context, remote, refspec string) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	r.pushes = append(r.pushes, remote+" "+refspec)
	return nil
}

type reviewRequest struct {
	repo   string
	number int
	users  []string
	teams  []string
}

type fakeHost struct {
	open      map[string][]ports.PullRequest
	listErr   error
	createErr error
	created   map[string]ports.NewPullRequest
	labels    map[string][]string
	reviews   []reviewRequest
	next      int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		open:    map[string][]ports.PullRequest{},
		created: map[string]ports.NewPullRequest{},
		labels:  map[string][]string{},
		next:    100,
	}
}

func (h *fakeHost) OpenPullRequests(ctx context.Context, owner, repo string) ([]ports.PullRequest, error) {
	if h.listErr != nil {
		return nil, h.listErr
	}
	return h.open[owner+"/"+repo], nil
}

func (h *fakeHost) CreatePullRequest(ctx context.Context, owner, repo string, pr ports.NewPullRequest) (ports.PullRequest, error) {
	if h.createErr != nil {
		return ports.PullRequest{}, h.createErr
	}
	h.next++
	h.created[owner+"/"+repo] = pr
	return ports.PullRequest{Number: h.next, HTMLURL: "https://github.com/" + owner + "/" + repo + "/pull/new"}, nil
}

func (h *fakeHost) AddLabels(ctx context.Context, owner, repo string, number int, labels ...string) error {
	h.labels[owner+"/"+repo] = append(h.labels[owner+"/"+repo], labels...)
	return nil
}

func (h *fakeHost) RequestReviewers(ctx context.Context, owner, repo string, number int, users, teams []string) error {
	h.reviews = append(h.reviews, reviewRequest{repo: owner + "/" + repo, number: number, users: users, teams: teams})
	return nil
}

type memLedger struct {
	mu      sync.Mutex
	entries map[string]types.RepoResult
	err     error
}

func (l *memLedger) Record(ctx context.Context, key, version string, result types.RepoResult) error {
	if l.err != nil {
		return l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.entries == nil {
		l.entries = map[string]types.RepoResult{}
	}
	l.entries[key+"/"+version+"/"+result.Repo] = result
	return nil
}

func (l *memLedger) Results(ctx context.Context, key, version string) ([]types.RepoResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []types.RepoResult
	for _, r := range l.entries {
		out = append(out, r)
	}
	return out, nil
}

type capturePublisher struct {
	arn     string
	payload []byte
}

func (p *capturePublisher) PublishRaw(ctx context.Context, arn string, payload []byte) error {
	p.arn = arn
	p.payload = payload
	return nil
}
