package server

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/usersvc/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

func TestNewApp_UnknownLogBackend(t *testing.T) {
	c := testConfig()
	c.LogBackend = "syslog"

	app, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "unknown log backend")
}

func TestNewApp_UnsupportedDriver(t *testing.T) {
	c := testConfig()
	c.DatabaseDriver = "sqlite"

	app, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestNewApp_DatabaseUnreachable(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "postgres://u:p@127.0.0.1:1/users?sslmode=disable&connect_timeout=1"
	c.DatabaseConnectRetries = 1

	app, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "db init error")
}
