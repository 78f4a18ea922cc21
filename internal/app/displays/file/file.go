package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/sirupsen/logrus"
)

// ErrNotInitialized - Show or Status called before Init
var ErrNotInitialized = errors.New("no output file for storing board lines")

// FileDisplay appends every board change and status line to a file
type FileDisplay struct {
	Log *logrus.Logger
	now func() time.Time

	mu sync.Mutex
	f  *os.File
}

func New(log *logrus.Logger) app.Display {
	return &FileDisplay{Log: log, now: time.Now}
}

func (s *FileDisplay) Init(ctx context.Context, params interface{}) error {
	parameters, ok := params.(Configuration)
	if !ok {
		return fmt.Errorf("file display: unexpected parameters %T", params)
	}

	if dir := filepath.Dir(parameters.Output); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			s.Log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": err,
			}).Error("Unable to create folder '" + dir + "'")
			return err
		}
	}

	f, err := os.OpenFile(parameters.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.Log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": err,
		}).Error("Unable to Open file")
		return err
	}

	s.mu.Lock()
	s.f = f
	s.mu.Unlock()
	return nil
}

func (s *FileDisplay) Show(ctx context.Context, text string) error {
	return s.write(ctx, fmt.Sprintf("board [%s]", text))
}

func (s *FileDisplay) Status(ctx context.Context, line int, text string) error {
	return s.write(ctx, fmt.Sprintf("status %d %s", line, text))
}

func (s *FileDisplay) write(ctx context.Context, record string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return ErrNotInitialized
	}

	w := bufio.NewWriter(s.f)
	n, err := w.WriteString(s.now().Format(time.RFC3339) + " " + record + "\n")
	if err != nil {
		return err
	}
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"length": fmt.Sprintf("wrote %d bytes", n),
	}).Trace("Wrote")

	return w.Flush()
}

func (s *FileDisplay) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
