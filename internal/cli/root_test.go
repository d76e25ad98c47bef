package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "sgdesign", cmd.Use)
	assert.Contains(t, cmd.Long, "Sylvester-Gallai")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"enumerate", "seeds", "show", "verify", "config", "version"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestEnumerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	enumCmd, _, err := cmd.Find([]string{"enumerate"})
	require.NoError(t, err)

	for _, name := range []string{"min-points", "max-points", "max-line-len", "output-dir", "compression", "db", "max-steps", "metrics-file"} {
		assert.NotNil(t, enumCmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "o", enumCmd.Flags().Lookup("output-dir").Shorthand)
}

func TestSeedsCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	seedsCmd, _, err := cmd.Find([]string{"seeds"})
	require.NoError(t, err)

	assert.Equal(t, "3", seedsCmd.Flags().Lookup("initial-len").DefValue)
	assert.Equal(t, "2", seedsCmd.Flags().Lookup("up-to").DefValue)
	assert.Equal(t, "n", seedsCmd.Flags().Lookup("points").Shorthand)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, nil, "--format", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sgdesign dev")

	out, err = execute(t, nil, "--format", "json", "version")
	require.NoError(t, err)
	var info VersionInfo
	decodeData(t, out, &info)
	assert.Equal(t, "dev", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
