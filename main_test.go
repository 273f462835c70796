package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()

	require.NoError(t, cmd.ParseFlags([]string{"-o", "/reports", "--image-width", "800", "-v"}))

	dir, err := cmd.Flags().GetString("export-dir")
	require.NoError(t, err)
	assert.Equal(t, "/reports", dir)

	width, err := cmd.Flags().GetInt("image-width")
	require.NoError(t, err)
	assert.Equal(t, 800, width)

	verbose, err := cmd.Flags().GetBool("verbose")
	require.NoError(t, err)
	assert.True(t, verbose)
}

func TestRootCmdVersion(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, version, cmd.Version)
	assert.Equal(t, "testscribe", cmd.Name())
}
