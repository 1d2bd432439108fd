package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtlprog/treelife/internal/config"
)

func TestResolveDatabaseURL_Default(t *testing.T) {
	assert.Equal(t, config.DefaultDatabaseURL, config.ResolveDatabaseURL(""))
	assert.Equal(t, "postgres://postgres@localhost:5432/tree_life", config.ResolveDatabaseURL(""))
}

func TestResolveDatabaseURL_Override(t *testing.T) {
	overrides := []string{
		"postgres://user:secret@db:5432/tree_life?sslmode=disable",
		"not a url at all",
		" ",
	}
	for _, override := range overrides {
		assert.Equal(t, override, config.ResolveDatabaseURL(override))
	}
}

func TestDatabaseURLFromEnv(t *testing.T) {
	t.Setenv(config.EnvDatabaseURL, "")
	assert.Equal(t, config.DefaultDatabaseURL, config.DatabaseURLFromEnv())

	t.Setenv(config.EnvDatabaseURL, "postgres://other@remote:6543/persons")
	assert.Equal(t, "postgres://other@remote:6543/persons", config.DatabaseURLFromEnv())
}
