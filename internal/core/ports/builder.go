package ports

import "context"

// BuilderService defines operations for building container images from source code.
type BuilderService interface {
	// BuildImage clones a repository and builds an image from it, tagged as
	// imageName. It blocks until the engine reports the build finished.
	BuildImage(ctx context.Context, repoURL string, imageName string) (string, error)
}
