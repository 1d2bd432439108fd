package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("host", "", "")
	set.String("port", "", "")
	assert.NoError(t, set.Parse(args))
	return cli.NewContext(newApp(), set, nil)
}

func TestServerAddr_Defaults(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", serverAddr(newContext(t)))
}

func TestServerAddr_Flags(t *testing.T) {
	c := newContext(t, "-host", "127.0.0.1", "-port", "9000")
	assert.Equal(t, "127.0.0.1:9000", serverAddr(c))
}

func TestServerAddr_IPv6(t *testing.T) {
	c := newContext(t, "-host", "::1", "-port", "8000")
	assert.Equal(t, "[::1]:8000", serverAddr(c))
}

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "check-db"}, names)
}
