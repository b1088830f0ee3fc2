package commands

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) (*kong.Kong, *CLI) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("switchctl"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)
	return parser, cli
}

func TestParseRequiresExactlyOneCommand(t *testing.T) {
	parser, _ := newParser(t)

	_, err := parser.Parse(nil)
	require.Error(t, err, "a command is mandatory")

	_, err = parser.Parse([]string{"deploy"})
	require.Error(t, err, "unknown commands are rejected before anything runs")
}

func TestParseSwitchTakesVariantArgument(t *testing.T) {
	parser, cli := newParser(t)

	_, err := parser.Parse([]string{"switch"})
	require.Error(t, err, "switch needs a target variant")

	ctx, err := parser.Parse([]string{"switch", "alpha"})
	require.NoError(t, err)
	require.Equal(t, "switch <variant>", ctx.Command())
	require.Equal(t, "alpha", cli.Switch.Variant)
}

func TestParseGlobalFlags(t *testing.T) {
	parser, cli := newParser(t)

	_, err := parser.Parse([]string{"-v", "-C", "/tmp/work", "-c", "custom.yaml", "status"})
	require.NoError(t, err)
	require.True(t, cli.Verbose)
	require.Equal(t, "/tmp/work", cli.Dir)
	require.Equal(t, "custom.yaml", cli.Config)
}

func TestParseWatchDebounce(t *testing.T) {
	parser, cli := newParser(t)

	_, err := parser.Parse([]string{"watch", "--debounce", "500ms"})
	require.NoError(t, err)
	require.Equal(t, 500*time.Millisecond, cli.Watch.Debounce)
}

func TestParseResetYesFlag(t *testing.T) {
	parser, cli := newParser(t)

	_, err := parser.Parse([]string{"reset", "-y"})
	require.NoError(t, err)
	require.True(t, cli.Reset.Yes)
}
