package db

import (
	"context"
	"io"
	"testing"

	defaults "github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestDataSourceName(t *testing.T) {
	conf := Configuration{}
	defaults.SetDefaults(&conf)

	assert.Equal(t, "host=172.17.0.2 port=5432 user=postgres password=mysecretpassword dbname=postgres sslmode=disable", conf.DataSourceName())
}

func TestCreateTableSQL(t *testing.T) {
	assert.Contains(t, createTableSQL, "flightboard.board")
	assert.Contains(t, createTableSQL, "Text text NOT NULL")
	assert.NotContains(t, createTableSQL, "varchar(80)")
}

func TestNotConnected(t *testing.T) {
	log := logrus.New()
	log.Out = io.Discard
	d := New(log)
	ctx := context.Background()

	assert.ErrorIs(t, d.Show(ctx, "QF123 "), errNoConnection)
	assert.ErrorIs(t, d.Status(ctx, 0, "Data: none"), errNoConnection)
	assert.Error(t, d.Init(ctx, "postgres://"))
	assert.NoError(t, d.Close())
}
