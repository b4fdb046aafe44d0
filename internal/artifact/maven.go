package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bumpdeps/internal/ports"
	"bumpdeps/internal/types"

	"github.com/klauspost/compress/gzhttp"
	log "github.com/sirupsen/logrus"
)

const (
	RetryDelay    = 30 * time.Second
	MaxTotalDelay = 10 * time.Minute
	// FallbackDelay is slept when no artifact coordinates are configured.
	FallbackDelay = 10 * time.Minute
)

// MavenWaiter polls a Maven repository until the released POM is downloadable.
type MavenWaiter struct {
	RepositoryURL string
	GroupID       string
	ArtifactID    string
	Version       string
	Username      string
	Password      string

	Client        *http.Client
	RetryDelay    time.Duration
	MaxTotalDelay time.Duration
}

// SleepWaiter waits a fixed duration. It is the conservative fallback when the artifact cannot be polled.
type SleepWaiter struct {
	Duration time.Duration
}

// NewWaiter picks a MavenWaiter when the options carry full artifact coordinates, a SleepWaiter otherwise.
func NewWaiter(o types.Options) ports.ArtifactWaiter {
	if !o.WaitsForArtifact() {
		return &SleepWaiter{Duration: FallbackDelay}
	}
	return &MavenWaiter{
		RepositoryURL: o.MavenRepositoryURL,
		GroupID:       o.GroupID,
		ArtifactID:    o.ArtifactID,
		Version:       o.Version,
		Username:      o.MavenUsername,
		Password:      o.MavenPassword,
		Client:        NewHTTPClient(),
		RetryDelay:    RetryDelay,
		MaxTotalDelay: MaxTotalDelay,
	}
}

// NewHTTPClient returns a client that transparently decodes gzip/zstd responses.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)}
}

func (w *SleepWaiter) Wait(ctx context.Context) error {
	log.Infof("No artifact coordinates configured; sleeping %s", w.Duration)
	return sleep(ctx, w.Duration)
}

// PomURL is the location of the artifact's POM for the configured version.
func (w *MavenWaiter) PomURL() string {
	root := strings.TrimSuffix(w.RepositoryURL, "/")
	groupPath := strings.ReplaceAll(w.GroupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom", root, groupPath, w.ArtifactID, w.Version, w.ArtifactID, w.Version)
}

// Wait polls every RetryDelay until the POM answers with a 2xx status. After MaxTotalDelay it gives up with
// types.ErrArtifactTimeout. Transport errors count as "not published yet".
func (w *MavenWaiter) Wait(ctx context.Context) error {
	url := w.PomURL()
	client := w.Client
	if client == nil {
		client = NewHTTPClient()
	}
	retry := w.RetryDelay
	if retry <= 0 {
		retry = RetryDelay
	}
	budget := w.MaxTotalDelay
	if budget <= 0 {
		budget = MaxTotalDelay
	}

	start := timeNow()
	for {
		found, err := w.probe(ctx, client, url)
		elapsed := timeNow().Sub(start)
		if err != nil {
			log.WithError(err).WithField("url", url).Warn("Artifact probe failed")
		}
		if found {
			log.Infof("Found the artifact after %ds", int(elapsed.Seconds()))
			return nil
		}
		left := budget - elapsed
		if left <= 0 {
			return types.Err(types.ErrArtifactTimeout, err,
				"couldn't find artifact after %ds; giving up", int(elapsed.Seconds()))
		}
		wait := min(left, retry)
		log.Warnf("Artifact isn't published yet; waiting %ds", int(wait.Seconds()))
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (w *MavenWaiter) probe(ctx context.Context, client *http.Client, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	if w.Username != "" || w.Password != "" {
		log.Debug("using credentials")
		req.SetBasicAuth(w.Username, w.Password)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
