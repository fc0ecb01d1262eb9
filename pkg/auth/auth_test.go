package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticAuthorizer(t *testing.T) {
	authorizer := NewStaticAuthorizer("admin-1", "dist-1", "")

	assert.True(t, authorizer.IsPrivilegedCaller("admin-1"))
	assert.True(t, authorizer.IsPrivilegedCaller("dist-1"))
	assert.False(t, authorizer.IsPrivilegedCaller("buyer-1"))
	// The empty identity is never privileged, even if configured by mistake.
	assert.False(t, authorizer.IsPrivilegedCaller(""))
}
