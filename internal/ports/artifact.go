package ports

import "context"

// ArtifactWaiter blocks until the released artifact can be consumed by downstream builds.
// It MUST return an error wrapping types.ErrArtifactTimeout when the artifact never showed up.
type ArtifactWaiter interface {
	Wait(ctx context.Context) error
}
