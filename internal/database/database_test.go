package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/treelife/internal/database"
)

func TestNew_InvalidURL(t *testing.T) {
	_, err := database.New(context.Background(), "postgres://host:notaport/db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse database URL")
}

func TestNew_UnreachableIsLazy(t *testing.T) {
	ctx := context.Background()

	db, err := database.New(ctx, "postgres://postgres@127.0.0.1:1/tree_life?connect_timeout=1")
	require.NoError(t, err)
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = db.Ping(pingCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping database")
}
