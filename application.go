package tview

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
)

const (
	updateQueueSize = 100
	// resizeSettle coalesces bursts of resize events into one redraw.
	resizeSettle = 50 * time.Millisecond
)

// Application owns the terminal screen. Its event loop feeds key events to
// the root primitive while it holds the focus, turns raw mouse reports into
// MouseActions and executes the Commands the primitives return.
//
// Primitives are only touched from the event loop goroutine. Other
// goroutines hand work over with QueueUpdate.
//
//	app := tview.NewApplication().SetRoot(list)
//	if err := app.Run(); err != nil {
//		log.Fatal(err)
//	}
type Application struct {
	mu sync.RWMutex

	screen  tcell.Screen
	root    Primitive
	focus   Primitive
	events  chan tcell.Event
	updates chan func()

	mouse mouseTracker

	// fullRedraw clears the screen before the next frame.
	fullRedraw bool

	logger *slog.Logger
}

// NewApplication returns an application without a screen. Run creates one
// unless SetScreen installed it first.
func NewApplication() *Application {
	return &Application{
		updates: make(chan func(), updateQueueSize),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger receiving event loop records. The terminal is
// claimed while the application runs, so log to a file.
func (a *Application) SetLogger(logger *slog.Logger) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if logger != nil {
		a.logger = logger
	}
	return a
}

// SetScreen installs an initialized screen. It is ignored once a screen is
// set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.fullRedraw = true
	}
	return a
}

// SetRoot sets the primitive covering the whole screen and gives it the
// focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.mu.Lock()
	a.root = root
	a.fullRedraw = true
	a.mu.Unlock()
	return a.SetFocus(root)
}

// SetFocus blurs the focused primitive and focuses p. A primitive may
// delegate the focus to one of its children from its Focus method.
func (a *Application) SetFocus(p Primitive) *Application {
	a.mu.Lock()
	previous := a.focus
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.mu.Unlock()

	if previous != nil {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(child Primitive) {
			a.SetFocus(child)
		})
	}
	return a
}

// GetFocus returns the focused primitive or nil.
func (a *Application) GetFocus() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.focus
}

func (a *Application) currentRoot() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.root
}

func (a *Application) currentScreen() tcell.Screen {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.screen
}

// Run creates the screen if needed and runs the event loop until Stop is
// called or the terminal reports an error, which is returned.
func (a *Application) Run() error {
	screen, err := a.initScreen()
	if err != nil {
		return err
	}

	// A panic leaves the terminal in raw mode unless the screen is finalized.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	events := screen.EventQ()
	a.mu.Lock()
	a.events = events
	a.mu.Unlock()

	a.draw()
	a.logger.Debug("event loop started")

	var (
		runErr      error
		lastResize  time.Time
		resizeTimer *time.Timer
	)
	for {
		select {
		case event := <-events:
			if event == nil {
				a.logger.Debug("event loop stopped")
				return runErr
			}
			switch event := event.(type) {
			case *tcell.EventKey:
				a.handleKey(event)
			case *tcell.EventMouse:
				a.handleMouse(event)
			case *tcell.EventResize:
				if time.Since(lastResize) < resizeSettle {
					if resizeTimer != nil {
						resizeTimer.Stop()
					}
					resizeTimer = time.AfterFunc(resizeSettle, func() {
						a.QueueEvent(event)
					})
				}
				lastResize = time.Now()
				a.mu.Lock()
				a.fullRedraw = true
				a.mu.Unlock()
				a.draw()
			case *tcell.EventError:
				a.logger.Error("terminal error", "err", event)
				runErr = event
				a.Stop()
			}
		case update := <-a.updates:
			update()
		}
	}
}

func (a *Application) initScreen() (tcell.Screen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen != nil {
		return a.screen, nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	a.screen = screen
	a.fullRedraw = true
	return screen, nil
}

// Stop finalizes the screen, which ends Run.
func (a *Application) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

// Draw redraws the screen on the event loop. It blocks until the frame is
// drawn, so never call it from the event loop itself.
func (a *Application) Draw() *Application {
	return a.QueueUpdate(a.draw)
}

// QueueUpdate runs f on the event loop and returns once f has run.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	a.updates <- func() {
		defer close(done)
		f()
	}
	<-done
	return a
}

// QueueUpdateDraw works like QueueUpdate and redraws after f.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// QueueEvent posts event to the event loop. It is dropped when the loop is
// not running.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	a.mu.RLock()
	events := a.events
	a.mu.RUnlock()
	if events != nil {
		events <- event
	}
	return a
}

func (a *Application) handleKey(event *tcell.EventKey) {
	root := a.currentRoot()
	if root == nil || !root.HasFocus() {
		return
	}
	if a.execute(root.InputHandler(event)) {
		a.draw()
	}
}

// handleMouse sends each action derived from event to the capturing
// primitive, or to the root when nothing captures the mouse.
func (a *Application) handleMouse(event *tcell.EventMouse) {
	redraw := false
	for _, action := range a.mouse.actions(event) {
		target := a.mouse.capture
		if target == nil {
			target = a.currentRoot()
		}
		if target == nil {
			continue
		}
		capture, cmd := target.MouseHandler(action, event)
		a.mouse.capture = capture
		if a.execute(cmd) {
			redraw = true
		}
	}
	if redraw {
		a.draw()
	}
}

// execute runs cmd and reports whether the screen needs a redraw.
func (a *Application) execute(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.execute(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.logger.Debug("quit requested")
		a.Stop()
	case SetFocusCommand:
		if c.Target != nil && c.Target != a.GetFocus() {
			a.SetFocus(c.Target)
			return true
		}
	case SetTitleCommand:
		if screen := a.currentScreen(); screen != nil {
			screen.SetTitle(string(c))
		}
	}
	return false
}

// draw lays the root out over the whole screen and draws it when something
// is dirty. tcell diffs cells on Show, so the screen is only cleared for
// full redraws.
func (a *Application) draw() {
	a.mu.RLock()
	screen, root, full := a.screen, a.root, a.fullRedraw
	a.mu.RUnlock()
	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if !full && !root.IsDirty() {
		return
	}
	if full {
		screen.Clear()
	}
	root.Draw(screen)
	root.MarkClean()
	screen.Show()

	a.mu.Lock()
	a.fullRedraw = false
	a.mu.Unlock()
}

// mouseTracker derives MouseActions from tcell mouse reports, which carry
// the full button state rather than transitions.
type mouseTracker struct {
	// capture receives follow-up actions until its handler releases it.
	capture Primitive
	x, y    int
	buttons tcell.ButtonMask
}

var mouseButtonActions = []struct {
	mask     tcell.ButtonMask
	down, up MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp},
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

func (m *mouseTracker) actions(event *tcell.EventMouse) []MouseAction {
	var actions []MouseAction
	x, y := event.Position()
	if x != m.x || y != m.y {
		actions = append(actions, MouseMove)
		m.x, m.y = x, y
	}

	buttons := event.Buttons()
	changed := (buttons ^ m.buttons) &^ wheelMask
	for _, b := range mouseButtonActions {
		switch {
		case changed&b.mask == 0:
		case buttons&b.mask != 0:
			actions = append(actions, b.down)
		default:
			actions = append(actions, b.up)
		}
	}
	if buttons&tcell.WheelUp != 0 {
		actions = append(actions, MouseScrollUp)
	}
	if buttons&tcell.WheelDown != 0 {
		actions = append(actions, MouseScrollDown)
	}
	m.buttons = buttons &^ wheelMask
	return actions
}
