package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertFileContent checks that rel exists with exactly want.
func AssertFileContent(t *testing.T, p *Project, rel, want string) {
	t.Helper()
	if !assert.True(t, p.Exists(rel), "%s should exist", rel) {
		return
	}
	assert.Equal(t, want, p.ReadFile(rel), "content of %s", rel)
}

// AssertFileExists checks that every rel exists.
func AssertFileExists(t *testing.T, p *Project, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		assert.True(t, p.Exists(rel), "%s should exist", rel)
	}
}

// AssertNoFile checks that none of rels exist.
func AssertNoFile(t *testing.T, p *Project, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		assert.False(t, p.Exists(rel), "%s should not exist", rel)
	}
}

// AssertOccurrences checks how many times sub appears in rel.
func AssertOccurrences(t *testing.T, p *Project, rel, sub string, want int) {
	t.Helper()
	assert.Equal(t, want, strings.Count(p.ReadFile(rel), sub), "occurrences of %q in %s", sub, rel)
}
