package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/sirupsen/logrus"
)

const (
	Schemaname = "flightboard"
	Tablename  = "board"

	// KindBoard - a message shown on the board
	KindBoard = "board"
	// KindStatus - an ancillary status line
	KindStatus = "status"
)

// board text is unbounded, the board width is configurable
const createTableSQL = "CREATE TABLE IF NOT EXISTS " + Schemaname + "." + Tablename + " (TimeStamp timestamp NOT NULL, Kind varchar(10) NOT NULL, Line integer NOT NULL, Text text NOT NULL)"

var errNoConnection = errors.New("no database connection")

// PostGreDisplay records every board change and status line in Postgres
type PostGreDisplay struct {
	Log *logrus.Logger
	db  *sql.DB
	now func() time.Time
}

func New(log *logrus.Logger) app.Display {
	return &PostGreDisplay{Log: log, now: time.Now}
}

// Open connects to the database described by parameters
func Open(ctx context.Context, log *logrus.Logger, parameters Configuration) (*sql.DB, error) {
	log.WithContext(ctx).WithFields(logrus.Fields{
		"host":   parameters.Host,
		"port":   parameters.Port,
		"dbName": parameters.Dbname,
	}).Info("Init DB ...")

	db, err := sql.Open("postgres", parameters.DataSourceName())
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.WithContext(ctx).Info("Successfully connected : " + parameters.Host)
	return db, nil
}

func (s *PostGreDisplay) Init(ctx context.Context, params interface{}) error {
	parameters, ok := params.(Configuration)
	if !ok {
		return fmt.Errorf("db display: unexpected parameters %T", params)
	}

	db, err := Open(ctx, s.Log, parameters)
	if err != nil {
		return err
	}
	s.db = db

	createSchemaSQL := "CREATE SCHEMA IF NOT EXISTS " + Schemaname
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"SQL": createSchemaSQL,
	}).Info("create shema")
	if _, err := s.db.ExecContext(ctx, createSchemaSQL); err != nil {
		return err
	}

	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"SQL": createTableSQL,
	}).Info("create table")
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return err
	}

	return nil
}

func (s *PostGreDisplay) Show(ctx context.Context, text string) error {
	return s.insert(ctx, KindBoard, 0, text)
}

func (s *PostGreDisplay) Status(ctx context.Context, line int, text string) error {
	return s.insert(ctx, KindStatus, line, text)
}

func (s *PostGreDisplay) insert(ctx context.Context, kind string, line int, text string) error {
	if s.db == nil {
		return errNoConnection
	}

	insertSQL := "INSERT INTO " + Schemaname + "." + Tablename + " VALUES($1, $2, $3, $4)"
	result, err := s.db.ExecContext(ctx, insertSQL, s.now(), kind, line, text)
	if err != nil {
		return err
	}

	nb, _ := result.RowsAffected()
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"Rows Affected": nb,
		"kind":          kind,
	}).Debug("Insert in DB ...")
	return nil
}

func (s *PostGreDisplay) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
