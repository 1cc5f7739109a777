package main

import (
	"bytes"
	"delivery-ops-service/internal/platform/auth"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "u-42", "--role", "admin"})
	require.NoError(t, root.Execute())

	u, err := auth.Parse([]byte("cli-secret"), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "u-42", u.ID)
	assert.Equal(t, auth.RoleAdmin, u.Role)
}

func TestTokenCommandNeedsSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"token", "u-42"})
	assert.Error(t, root.Execute())
}

func TestSeedNeedsDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"seed"})
	assert.Error(t, root.Execute())
}

func TestSeedFileDefaultsToSeedPath(t *testing.T) {
	t.Setenv("SEED_PATH", "fixtures/ci.yaml")

	cmd := newSeedCmd()
	assert.Equal(t, "fixtures/ci.yaml", cmd.Flags().Lookup("file").DefValue)
}
