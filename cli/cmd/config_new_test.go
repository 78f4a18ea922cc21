package cmd

import (
	"path/filepath"
	"testing"

	"github.com/francois-poidevin/flightboard/config"
	defaults "github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestAsEnvVariables(t *testing.T) {
	c := &config.Configuration{}
	defaults.SetDefaults(c)

	m := asEnvVariables(c, envPrefix, true)
	assert.Equal(t, "info", m["FB_LOG_LEVEL"])
	assert.Equal(t, "12", m["FB_FLIGHTBOARD_WIDTH"])
	assert.Equal(t, "-33.9429,151.2562", m["FB_FLIGHTBOARD_LOCATION"])
	assert.Equal(t, "5432", m["FB_FLIGHTBOARD_DB_PORT"])
	assert.Equal(t, ":8080", m["FB_FLIGHTBOARD_HTTP_LISTEN"])

	m = asEnvVariables(c, "", false)
	assert.Contains(t, m, "FLIGHTBOARD_ADSB_URL")
}

func TestExportLines(t *testing.T) {
	lines := exportLines(map[string]string{"FB_B": "2", "FB_A": "1"})
	assert.Equal(t, []string{`export FB_A="1"`, `export FB_B="2"`}, lines)
}

func TestConfigureLog(t *testing.T) {
	l := testLogger()
	c := &config.Configuration{}
	defaults.SetDefaults(c)

	c.Log.Level = "debug"
	c.Log.Format = "json"
	c.Log.File = filepath.Join(t.TempDir(), "flightboard.log")
	configureLog(l, c)

	assert.Equal(t, logrus.DebugLevel, l.Level)
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
	out, ok := l.Out.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, c.Log.File, out.Filename)
	assert.Equal(t, 10, out.MaxSize)

	l = testLogger()
	c.Log.Level = "loud"
	c.Log.File = ""
	configureLog(l, c)
	assert.Equal(t, logrus.InfoLevel, l.Level)
}
