// Package tui runs a [scene.Scene] in the terminal with bubbletea.
//
// The canvas fills the terminal except for a status row at the bottom. Each
// character cell shows two canvas pixels (see package ansi), so the mouse
// moves in steps of two pixel rows.
package tui

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"go.jacobcolvin.com/colordropper/ansi"
	"go.jacobcolvin.com/colordropper/asset"
	"go.jacobcolvin.com/colordropper/log"
	"go.jacobcolvin.com/colordropper/scene"
)

// ErrNoImage indicates the viewer was started without an image loader.
var ErrNoImage = errors.New("no image to show")

// Options configures a [Model].
type Options struct {
	// Image loads the displayed image. Required.
	Image asset.LoadFunc
	// Lens loads the magnifier lens icon. Without it the picker stays idle.
	Lens asset.LoadFunc
	// Logs, if set, feeds the newest log entry into the status row.
	Logs *log.Subscription
	// Title is the terminal window title.
	Title string
	// FPS is the redraw rate. Values below 1 become 1.
	FPS int
}

type (
	tickMsg  struct{}
	imageMsg struct {
		img image.Image
		err error
	}
	lensMsg struct {
		img image.Image
		err error
	}
	logMsg string
)

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx      context.Context
	scene    *scene.Scene
	log      *slog.Logger
	image    *asset.Handle
	lens     *asset.Handle
	logs     *log.Subscription
	err      error
	frame    strings.Builder
	title    string
	lastLog  string
	interval time.Duration
	cols     int
	rows     int
	loaded   bool
}

// New creates a [Model] drawing sc. Loads start immediately and are
// cancelled with ctx.
func New(ctx context.Context, sc *scene.Scene, opts Options, logger *slog.Logger) (*Model, error) {
	if opts.Image == nil {
		return nil, ErrNoImage
	}

	m := &Model{
		ctx:      ctx,
		scene:    sc,
		log:      logger,
		logs:     opts.Logs,
		title:    opts.Title,
		interval: time.Second / time.Duration(max(opts.FPS, 1)),
		image:    asset.Go(ctx, opts.Image),
	}

	if opts.Lens != nil {
		m.lens = asset.Go(ctx, opts.Lens)
	}

	return m, nil
}

// Selected returns the last committed color, or "" if none was picked.
func (m *Model) Selected() string {
	return m.scene.SelectedColor()
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Init starts the frame ticker and waits for the loads.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick(), m.waitImage()}
	if m.lens != nil {
		cmds = append(cmds, m.waitLens())
	}

	if m.logs != nil {
		cmds = append(cmds, m.waitLog())
	}

	return tea.Batch(cmds...)
}

// Update handles input, load results and frame ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := m.scene.Input()

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "p":
			on := m.scene.TogglePicker()
			m.log.Info("toggled picker", slog.Bool("enabled", on))
		}

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 0)
		m.rows = max(msg.Height-1, 0)
		m.scene.Resize(ansi.CanvasSize(m.cols, m.rows))

	case tea.MouseMotionMsg:
		m.point(msg.Mouse())

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			break
		}

		if m.point(mouse) {
			in.Press()
		}

	case tea.MouseReleaseMsg:
		if msg.Mouse().Button == tea.MouseLeft {
			in.Release()
		}

	case tea.BlurMsg:
		in.Release()
		in.Leave()

	case imageMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Error("cannot load image", slog.Any("err", msg.err))

			return m, tea.Quit
		}

		m.loaded = true
		m.scene.SetImage(msg.img)

	case lensMsg:
		if msg.err != nil {
			m.log.Warn("cannot load lens icon, picker disabled", slog.Any("err", msg.err))

			break
		}

		m.scene.SetLens(msg.img)

	case logMsg:
		m.lastLog = string(msg)

		return m, m.waitLog()

	case tickMsg:
		m.scene.Tick()
		m.frame.Reset()
		ansi.Render(&m.frame, m.scene.Canvas().Image())

		return m, m.tick()
	}

	return m, nil
}

// View draws the last rendered frame and the status row.
func (m *Model) View() tea.View {
	var b strings.Builder

	b.WriteString(m.frame.String())
	b.WriteString(m.status())

	v := tea.NewView(b.String())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	v.WindowTitle = m.title

	return v
}

// point moves the pointer to the cell under mouse and reports whether that
// cell is on the canvas.
func (m *Model) point(mouse tea.Mouse) bool {
	in := m.scene.Input()

	if mouse.X < 0 || mouse.Y < 0 || mouse.X >= m.cols || mouse.Y >= m.rows {
		in.Leave()

		return false
	}

	in.Move(ansi.PixelAt(mouse.X, mouse.Y))
	in.Enter()

	return true
}

var (
	keyStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func (m *Model) status() string {
	var parts []string

	switch {
	case m.err != nil:
		parts = append(parts, "error: "+m.err.Error())

	case !m.loaded:
		parts = append(parts, "loading image")

	default:
		if c := m.scene.SelectedColor(); c != "" {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  ")
			parts = append(parts, swatch+" "+keyStyle.Render(c))
		} else {
			parts = append(parts, "click to pick a color")
		}

		if g := m.scene.Magnifier().Grid(); !g.Empty() {
			parts = append(parts, "hover "+g.Center().Hex())
		}
	}

	picker := "picker off"
	if m.scene.PickerEnabled() {
		picker = "picker on"
	}

	parts = append(parts, picker, faintStyle.Render("p toggle · q quit"))

	if m.lastLog != "" {
		parts = append(parts, faintStyle.Render(m.lastLog))
	}

	line := strings.Join(parts, "  ")
	if m.cols > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.cols).Render(line)
	}

	return line
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) waitImage() tea.Cmd {
	h := m.image

	return func() tea.Msg {
		img, err := h.Wait(m.ctx)

		return imageMsg{img: img, err: err}
	}
}

func (m *Model) waitLens() tea.Cmd {
	h := m.lens

	return func() tea.Msg {
		img, err := h.Wait(m.ctx)

		return lensMsg{img: img, err: err}
	}
}

func (m *Model) waitLog() tea.Cmd {
	sub := m.logs

	return func() tea.Msg {
		entry, ok := <-sub.C()
		if !ok {
			return nil
		}

		return logMsg(lastLine(string(entry)))
	}
}

func lastLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}

	return s
}
