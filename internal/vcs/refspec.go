package vcs

import (
	"strings"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

func expandRefSpec(s string) config.RefSpec {
	src, dst, found := strings.Cut(s, ":")
	if !found {
		dst = src
	}
	return config.RefSpec(expandRef(src) + ":" + expandRef(dst))
}

func expandRef(name string) string {
	if strings.HasPrefix(name, "refs/") {
		return name
	}
	return plumbing.NewBranchReferenceName(name).String()
}
