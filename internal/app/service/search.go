package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/francois-poidevin/flightboard/internal/app/displays/db"
	"github.com/sirupsen/logrus"
)

// ErrInvalidRange - from is after to
var ErrInvalidRange = errors.New("fromTimeStamp is after toTimeStamp")

// Record - one line written by the db display
type Record struct {
	TimeStamp time.Time `json:"timeStamp"`
	Kind      string    `json:"kind"`
	Line      int       `json:"line"`
	Text      string    `json:"text"`
}

// Searcher - history of what the board showed
type Searcher interface {
	Search(ctx context.Context, fromTimeStamp, toTimeStamp time.Time) ([]Record, error)
}

type Service struct {
	Log    *logrus.Logger
	params db.Configuration
	open   func(ctx context.Context, log *logrus.Logger, params db.Configuration) (*sql.DB, error)

	// guards db, shared by concurrent requests
	mu sync.Mutex
	db *sql.DB
}

func New(log *logrus.Logger, params db.Configuration) *Service {
	return &Service{Log: log, params: params, open: db.Open}
}

// Search returns the board history between the two timestamps, oldest first
func (s *Service) Search(ctx context.Context, fromTimeStamp, toTimeStamp time.Time) ([]Record, error) {
	s.Log.WithContext(ctx).Info("Search service called")

	if fromTimeStamp.After(toTimeStamp) {
		return nil, ErrInvalidRange
	}

	conn, err := s.connection(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	selectSQLstmt := "SELECT TimeStamp, Kind, Line, Text FROM " + db.Schemaname + "." + db.Tablename + " WHERE TimeStamp BETWEEN $1 AND $2 ORDER BY TimeStamp"

	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"SQL": selectSQLstmt,
	}).Debug("Select statement")

	rows, errQuery := conn.QueryContext(ctx, selectSQLstmt, fromTimeStamp, toTimeStamp)
	if errQuery != nil {
		return nil, errQuery
	}
	defer rows.Close()

	result := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if errScan := rows.Scan(&rec.TimeStamp, &rec.Kind, &rec.Line, &rec.Text); errScan != nil {
			return nil, errScan
		}
		result = append(result, rec)
	}

	if errRow := rows.Err(); errRow != nil {
		return nil, errRow
	}

	return result, nil
}

// connection opens the database once and reuses it
func (s *Service) connection(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		s.Log.WithContext(ctx).Info("Search service - init DB")
		conn, err := s.open(ctx, s.Log, s.params)
		if err != nil {
			return nil, err
		}
		s.db = conn
	}
	return s.db, nil
}

func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
