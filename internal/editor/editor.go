// Package editor runs the interactive loop: it owns the cursor, the
// viewport, and the keybindings, and paints the document through a
// terminal backend.
package editor

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/mirao/hecto/internal/document"
	"github.com/mirao/hecto/internal/highlight"
	"github.com/mirao/hecto/internal/log"
	"github.com/mirao/hecto/internal/terminal"
)

// quitConfirmations is how many extra Ctrl-Q presses an unsaved document
// demands before quitting.
const quitConfirmations = 3

const helpMessage = "HELP: Ctrl-F = find | Ctrl-S = save | Ctrl-Q = quit"

// Backend is the drawing surface the editor paints on. Terminal satisfies
// it; tests substitute a scripted fake.
type Backend interface {
	Size() (int, int)
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()
	DrawText(x, y int, text string, style tcell.Style) int
	PollKey() terminal.Key
}

type statusMessage struct {
	text string
	time time.Time
}

// Editor couples a document to a backend and processes keypresses until
// the user quits.
type Editor struct {
	backend    Backend
	document   *document.Document
	cursor     document.Position
	offset     document.Position
	theme      highlight.Theme
	logger     *log.Logger
	status     statusMessage
	searchWord string
	version    string
	quitTimes  int
	shouldQuit bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithTheme sets the color theme.
func WithTheme(t highlight.Theme) Option {
	return func(e *Editor) { e.theme = t }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithVersion sets the version shown in the welcome message.
func WithVersion(v string) Option {
	return func(e *Editor) { e.version = v }
}

// WithStatus sets the initial status bar message.
func WithStatus(msg string) Option {
	return func(e *Editor) { e.status = statusMessage{text: msg, time: time.Now()} }
}

// New creates an editor over the given backend and document.
func New(backend Backend, doc *document.Document, opts ...Option) *Editor {
	e := &Editor{
		backend:   backend,
		document:  doc,
		theme:     highlight.DefaultTheme(),
		logger:    log.Null,
		version:   "dev",
		quitTimes: quitConfirmations,
		status:    statusMessage{text: helpMessage, time: time.Now()},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run repaints and processes keypresses until the user quits.
func (e *Editor) Run() {
	for {
		e.refreshScreen()
		if e.shouldQuit {
			break
		}
		e.processKeypress()
	}
}

// textSize returns the document viewport dimensions. Two rows are
// reserved for the status and message bars.
func (e *Editor) textSize() (int, int) {
	width, height := e.backend.Size()
	height -= 2
	if height < 0 {
		height = 0
	}
	return width, height
}

func (e *Editor) processKeypress() {
	key := e.backend.PollKey()

	switch key.Kind {
	case terminal.KeyCtrlQ:
		if e.quitTimes > 0 && e.document.IsDirty() {
			e.setStatus(fmt.Sprintf(
				"WARNING! File has unsaved changes. Press Ctrl-Q %d more times to quit.",
				e.quitTimes))
			e.quitTimes--
			return
		}
		e.shouldQuit = true
	case terminal.KeyCtrlS:
		e.save()
	case terminal.KeyCtrlF:
		e.search()
	case terminal.KeyEnter:
		e.insert('\n')
	case terminal.KeyRune:
		e.insert(key.Rune)
	case terminal.KeyDelete:
		e.document.Delete(e.cursor)
	case terminal.KeyBackspace:
		if e.cursor.X > 0 || e.cursor.Y > 0 {
			e.moveCursor(terminal.KeyLeft)
			e.document.Delete(e.cursor)
		}
	case terminal.KeyUp, terminal.KeyDown, terminal.KeyLeft, terminal.KeyRight,
		terminal.KeyPageUp, terminal.KeyPageDown, terminal.KeyHome, terminal.KeyEnd:
		e.moveCursor(key.Kind)
	}

	e.scroll()
	if e.quitTimes < quitConfirmations {
		e.quitTimes = quitConfirmations
		e.setStatus("")
	}
}

// insert places c at the cursor and advances, unless the inserted
// character merged into the grapheme before the cursor (a second regional
// indicator completing a flag), in which case the cursor stays put.
func (e *Editor) insert(c rune) {
	e.document.Insert(e.cursor, c)

	row := e.document.Row(e.cursor.Y)
	if row == nil {
		return
	}
	if g, ok := row.GraphemeAt(e.cursor.X); ok {
		if g == string(c) {
			e.moveCursor(terminal.KeyRight)
		}
	} else {
		// Past the end of the row: the insert was a line break.
		e.moveCursor(terminal.KeyRight)
	}
}

func (e *Editor) moveCursor(key terminal.KeyKind) {
	_, height := e.textSize()
	x, y := e.cursor.X, e.cursor.Y
	lastLine := e.document.Len() - 1
	if lastLine < 0 {
		lastLine = 0
	}
	width := e.document.RowLen(y)

	switch key {
	case terminal.KeyUp:
		if y > 0 {
			y--
		}
	case terminal.KeyDown:
		if y < lastLine {
			y++
		}
	case terminal.KeyLeft:
		if x > 0 {
			x--
		} else if y > 0 {
			y--
			x = e.document.RowLen(y)
		}
	case terminal.KeyRight:
		if x < width {
			x++
		} else if y < lastLine {
			y++
			x = 0
		}
	case terminal.KeyPageUp:
		y -= height
		if y < 0 {
			y = 0
		}
	case terminal.KeyPageDown:
		y += height
		if y > lastLine {
			y = lastLine
		}
	case terminal.KeyHome:
		x = 0
	case terminal.KeyEnd:
		x = width
	}

	// Vertical moves clamp the column to the landing row's width.
	switch key {
	case terminal.KeyUp, terminal.KeyDown, terminal.KeyPageUp, terminal.KeyPageDown:
		if w := e.document.RowLen(y); x > w {
			x = w
		}
	}

	e.cursor = document.Position{X: x, Y: y}
}

func (e *Editor) scroll() {
	width, height := e.textSize()
	x, y := e.cursor.X, e.cursor.Y

	if y < e.offset.Y {
		e.offset.Y = y
	} else if y >= e.offset.Y+height {
		e.offset.Y = y - height + 1
	}
	if x < e.offset.X {
		e.offset.X = x
	} else if x >= e.offset.X+width {
		e.offset.X = x - width + 1
	}
}

func (e *Editor) save() {
	if e.document.FileName == "" {
		name := e.prompt("Save as: ", nil)
		if name == "" {
			e.setStatus("Save aborted.")
			return
		}
		e.document.FileName = name
	}

	if err := e.document.Save(); err != nil {
		e.logger.Error("save %s: %v", e.document.FileName, err)
		e.setStatus("Error writing file!")
		return
	}
	e.logger.Info("saved %s", e.document.FileName)
	e.setStatus("File saved successfully.")
}

// search runs an incremental find. Arrow keys pick the direction of the
// next jump; the match overlay follows the query and is cleared when the
// prompt closes.
func (e *Editor) search() {
	direction := document.SearchForward

	e.prompt("Search (ESC to cancel, Arrows to navigate): ", func(key terminal.Key, query string) {
		moved := false
		switch key.Kind {
		case terminal.KeyRight, terminal.KeyDown:
			direction = document.SearchForward
			e.moveCursor(terminal.KeyRight)
			moved = true
		case terminal.KeyLeft, terminal.KeyUp:
			direction = document.SearchBackward
		default:
			direction = document.SearchForward
		}

		if pos, ok := e.document.Find(query, e.cursor, direction); ok {
			e.cursor = pos
			e.scroll()
		} else if moved {
			e.moveCursor(terminal.KeyLeft)
		}
		e.searchWord = query
	})

	e.searchWord = ""
}

// prompt collects a line of input on the message bar. The callback, if
// any, runs after every keypress with the pending input. Escape aborts
// and returns an empty string.
func (e *Editor) prompt(label string, callback func(terminal.Key, string)) string {
	var result string
	for {
		e.setStatus(label + result)
		e.refreshScreen()

		key := e.backend.PollKey()
		done := false
		switch key.Kind {
		case terminal.KeyBackspace:
			result = trimLastGrapheme(result)
		case terminal.KeyEnter:
			done = true
		case terminal.KeyRune:
			if !unicode.IsControl(key.Rune) {
				result += string(key.Rune)
			}
		case terminal.KeyEscape:
			result = ""
			done = true
		}
		if done {
			break
		}
		if callback != nil {
			callback(key, result)
		}
	}
	e.setStatus("")
	return result
}

func (e *Editor) setStatus(text string) {
	e.status = statusMessage{text: text, time: time.Now()}
}

func (e *Editor) refreshScreen() {
	e.backend.HideCursor()
	e.backend.Clear()

	if e.shouldQuit {
		e.backend.DrawText(0, 0, "Goodbye.", tcell.StyleDefault)
		e.backend.Show()
		return
	}

	width, height := e.textSize()
	e.document.Highlight(e.searchWord, e.offset.Y+height)

	e.drawRows(width, height)
	e.drawStatusBar(width, height)
	e.drawMessageBar(width, height)

	cursorX := e.cursor.X - e.offset.X
	if row := e.document.Row(e.cursor.Y); row != nil {
		cursorX = row.Width(e.offset.X, e.cursor.X)
	}
	e.backend.ShowCursor(cursorX, e.cursor.Y-e.offset.Y)
	e.backend.Show()
}

func (e *Editor) drawRows(width, height int) {
	for y := 0; y < height; y++ {
		row := e.document.Row(e.offset.Y + y)
		switch {
		case row != nil:
			e.drawRow(row, y, width)
		case e.document.IsEmpty() && y == height/3:
			e.drawWelcome(y, width)
		default:
			e.backend.DrawText(0, y, "~", e.styleFor(highlight.CategoryNone))
		}
	}
}

func (e *Editor) drawRow(row *document.Row, y, width int) {
	x := 0
	for _, span := range row.Render(e.offset.X, e.offset.X+width) {
		x = e.backend.DrawText(x, y, span.Text, e.styleFor(span.Category))
	}
}

func (e *Editor) drawWelcome(y, width int) {
	message := fmt.Sprintf("Hecto editor -- version %s", e.version)
	padding := (width - len(message) - 1) / 2
	if padding < 0 {
		padding = 0
	}
	line := runewidth.Truncate("~"+strings.Repeat(" ", padding)+message, width, "")
	e.backend.DrawText(0, y, line, e.styleFor(highlight.CategoryNone))
}

func (e *Editor) drawStatusBar(width, height int) {
	fileName := "[No Name]"
	if e.document.FileName != "" {
		fileName = runewidth.Truncate(e.document.FileName, 20, "")
	}
	modified := ""
	if e.document.IsDirty() {
		modified = " (modified)"
	}

	status := fmt.Sprintf("%s - %d lines%s", fileName, e.document.Len(), modified)
	position := fmt.Sprintf("Ln %d, Col %d", e.cursor.Y+1, e.cursor.X+1)

	if pad := width - len(status) - len(position); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	status = runewidth.Truncate(status+position, width, "")

	style := tcell.StyleDefault.
		Foreground(toTcell(e.theme.StatusFg)).
		Background(toTcell(e.theme.StatusBg))
	e.backend.DrawText(0, height, status, style)
}

func (e *Editor) drawMessageBar(width, height int) {
	if time.Since(e.status.time) >= 5*time.Second {
		return
	}
	text := runewidth.Truncate(e.status.text, width, "")
	e.backend.DrawText(0, height+1, text, tcell.StyleDefault)
}

func (e *Editor) styleFor(cat highlight.Category) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(e.theme.Color(cat)))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func trimLastGrapheme(s string) string {
	if s == "" {
		return ""
	}
	end := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if len(rest) == 0 {
			break
		}
		end += len(cluster)
	}
	return s[:end]
}
