package git

import (
	"context"
	"fmt"
	"regexp"
)

// versionRe matches release versions like v1.2.3.
var versionRe = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

// ValidVersion reports whether tag is a vMAJOR.MINOR.PATCH version.
func ValidVersion(tag string) bool {
	return versionRe.MatchString(tag)
}

// TagExists reports whether the tag exists in the repository.
func TagExists(ctx context.Context, repoPath, tag string) bool {
	err := runGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", "refs/tags/"+tag)
	return err == nil
}

// CreateTag creates an annotated tag at HEAD.
func CreateTag(ctx context.Context, repoPath, tag, message string) error {
	if err := runGit(ctx, repoPath, "tag", "-a", tag, "-m", message); err != nil {
		return fmt.Errorf("create tag %s: %w", tag, err)
	}
	return nil
}

// PushTag pushes the tag to origin.
func PushTag(ctx context.Context, repoPath, tag string) error {
	if err := runGit(ctx, repoPath, "push", "origin", "refs/tags/"+tag); err != nil {
		return fmt.Errorf("push tag %s: %w", tag, err)
	}
	return nil
}
