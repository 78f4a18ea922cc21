package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/sirupsen/logrus"
)

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("226")).
			Bold(true).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type StdOutDisplay struct {
	Log *logrus.Logger
	out io.Writer
}

// New - out defaults to os.Stdout
func New(log *logrus.Logger, out io.Writer) app.Display {
	if out == nil {
		out = os.Stdout
	}
	return &StdOutDisplay{Log: log, out: out}
}

func (s *StdOutDisplay) Init(ctx context.Context, params interface{}) error {
	//Nothing to do here
	return nil
}

func (s *StdOutDisplay) Show(ctx context.Context, text string) error {
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"message": text,
	}).Info("========Board=============")

	_, err := fmt.Fprintln(s.out, boardStyle.Render(text))
	return err
}

func (s *StdOutDisplay) Status(ctx context.Context, line int, text string) error {
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"line":   line,
		"status": text,
	}).Debug("Status")

	_, err := fmt.Fprintln(s.out, statusStyle.Render(fmt.Sprintf("[%d] %s", line, text)))
	return err
}

func (s *StdOutDisplay) Close() error {
	return nil
}
