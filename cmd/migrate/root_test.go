package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := getRootCmd()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"up", "down", "status", "version"} {
		assert.True(t, names[want], "%s subcommand should exist", want)
	}
}

func TestRootCommand_DatabaseURLFlag(t *testing.T) {
	flag := getRootCmd().PersistentFlags().Lookup("database-url")

	require.NotNil(t, flag)
	assert.Equal(t, "string", flag.Value.Type())
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	cmd := getRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"up", "extra"})

	assert.Error(t, cmd.Execute())
}
