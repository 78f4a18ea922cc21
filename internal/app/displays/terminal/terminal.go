// Package terminal renders the board full screen with tcell: a title row, the
// board in reverse video and the status lines under it.
package terminal

import (
	"context"
	"sync"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const (
	title     = "flightboard"
	boardRow  = 2
	statusTop = 4
	margin    = 2
)

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBoard  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true).Reverse(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

type TerminalDisplay struct {
	Log       *logrus.Logger
	newScreen func() (tcell.Screen, error)

	mu     sync.Mutex
	screen tcell.Screen
	board  string
	status []string
}

func New(log *logrus.Logger) app.Display {
	return &TerminalDisplay{Log: log, newScreen: tcell.NewScreen}
}

func (s *TerminalDisplay) Init(ctx context.Context, params interface{}) error {
	screen, err := s.newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))
	screen.Clear()

	s.mu.Lock()
	s.screen = screen
	s.renderLocked()
	s.mu.Unlock()

	go s.events(ctx, screen)
	return nil
}

// events redraws on resize until the screen is finalized
func (s *TerminalDisplay) events(ctx context.Context, screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.mu.Lock()
			if s.screen != nil {
				screen.Sync()
				s.renderLocked()
			}
			s.mu.Unlock()
		}
	}
}

func (s *TerminalDisplay) Show(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = text
	s.renderLocked()
	return nil
}

func (s *TerminalDisplay) Status(ctx context.Context, line int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = setLine(s.status, line, text)
	s.renderLocked()
	return nil
}

func (s *TerminalDisplay) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != nil {
		s.screen.Fini()
		s.screen = nil
	}
	return nil
}

// callers hold s.mu
func (s *TerminalDisplay) renderLocked() {
	if s.screen == nil {
		return
	}
	s.screen.Clear()
	width, height := s.screen.Size()
	for _, r := range layout(width, height, s.board, s.status) {
		drawText(s.screen, r.x, r.y, r.width, r.style, r.text)
	}
	s.screen.Show()
}

type row struct {
	x, y, width int
	style       tcell.Style
	text        string
}

// layout places the rows that fit in a width x height screen
func layout(width, height int, board string, status []string) []row {
	usable := width - 2*margin
	if usable <= 0 {
		return nil
	}
	rows := []row{
		{x: margin, y: 0, width: usable, style: styleTitle, text: title},
		{x: margin, y: boardRow, width: len([]rune(board)), style: styleBoard, text: board},
	}
	for idx, text := range status {
		rows = append(rows, row{x: margin, y: statusTop + idx, width: usable, style: styleStatus, text: text})
	}

	fitting := rows[:0]
	for _, r := range rows {
		if r.y >= height {
			continue
		}
		if r.width > usable {
			r.width = usable
		}
		fitting = append(fitting, r)
	}
	return fitting
}

func setLine(lines []string, line int, text string) []string {
	if line < 0 {
		return lines
	}
	for len(lines) <= line {
		lines = append(lines, "")
	}
	lines[line] = text
	return lines
}

func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for col < maxWidth {
		screen.SetContent(x+col, y, ' ', nil, style)
		col++
	}
}
