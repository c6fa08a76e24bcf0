// Package testutil provides testing utilities for gitlab-ops.
package testutil

// Safe test tokens that won't trigger GitHub's push protection.
// These are intentionally simple and obviously fake to avoid secret scanning.
const (
	// FakeGitLabToken is a safe test token for GitLab API authentication.
	FakeGitLabToken = "test-gitlab-token"

	// FakeBearerToken is a safe test bearer token.
	FakeBearerToken = "test-bearer-token"
)
