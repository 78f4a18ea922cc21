package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/francois-poidevin/flightboard/internal/app/displays/db"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Formatter = new(logrus.TextFormatter)
	log.Formatter.(*logrus.TextFormatter).DisableColors = true
	log.Formatter.(*logrus.TextFormatter).DisableTimestamp = true
	log.Level = logrus.TraceLevel
	log.Out = os.Stdout
}

func TestSearchRange(t *testing.T) {
	svc := New(log, db.Configuration{})
	svc.open = func(ctx context.Context, log *logrus.Logger, params db.Configuration) (*sql.DB, error) {
		t.Fatal("no connection expected")
		return nil, nil
	}

	from := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	_, err := svc.Search(context.Background(), from, from.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSearchConnectionError(t *testing.T) {
	refused := errors.New("connection refused")
	svc := New(log, db.Configuration{})
	svc.open = func(ctx context.Context, log *logrus.Logger, params db.Configuration) (*sql.DB, error) {
		return nil, refused
	}

	from := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	_, err := svc.Search(context.Background(), from, from.Add(time.Hour))
	assert.ErrorIs(t, err, refused)
	assert.NoError(t, svc.Close())
}

func TestSearchOpensOnce(t *testing.T) {
	var opened atomic.Int32
	svc := New(log, db.Configuration{})
	svc.open = func(ctx context.Context, log *logrus.Logger, params db.Configuration) (*sql.DB, error) {
		opened.Add(1)
		// nothing listens on port 1, queries fail fast
		return sql.Open("postgres", "host=127.0.0.1 port=1 user=postgres dbname=postgres sslmode=disable connect_timeout=1")
	}
	defer svc.Close()

	from := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Search(context.Background(), from, from.Add(time.Hour))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), opened.Load())
}

// needs a Postgres reachable with FB_TEST_DB_HOST, written by the db display
func TestSearch(t *testing.T) {
	host := os.Getenv("FB_TEST_DB_HOST")
	if host == "" {
		t.Skip("FB_TEST_DB_HOST not set")
	}
	conf := db.Configuration{
		Host:     host,
		Port:     5432,
		User:     "postgres",
		Password: "mysecretpassword",
		Dbname:   "postgres",
	}
	ctx := context.Background()

	display := db.New(log)
	require.NoError(t, display.Init(ctx, conf))
	defer display.Close()
	from := time.Now().Add(-time.Second)
	require.NoError(t, display.Show(ctx, "QF123 "))

	svc := New(log, conf)
	defer svc.Close()
	records, err := svc.Search(ctx, from, time.Now().Add(time.Second))
	require.NoError(t, err)
	require.NotEmpty(t, records)
	last := records[len(records)-1]
	assert.Equal(t, db.KindBoard, last.Kind)
	assert.Equal(t, "QF123 ", last.Text)
}
