package ai2docx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-ai2docx/internal/mathrender"
	"github.com/alnah/go-ai2docx/internal/process"
)

// mountScript adds one equation node to the surface page and resolves once
// web fonts are ready.
const mountScript = `(id, markup, fontSize, padding, display) => {
	const host = document.getElementById('surface') || document.body;
	const node = document.createElement('div');
	node.id = id;
	node.className = 'equation';
	node.style.fontSize = fontSize + 'px';
	node.style.padding = padding + 'px';
	node.innerHTML = markup;
	const math = node.querySelector('math');
	if (!math) {
		node.remove();
		throw new Error('markup has no math element');
	}
	if (display) {
		math.setAttribute('display', 'block');
	}
	host.appendChild(node);
	return document.fonts.ready.then(() => true);
}`

const unmountScript = `(id) => {
	const node = document.getElementById(id);
	if (node) node.remove();
}`

// rodSurface implements mathrender.Surface using a headless Chrome page.
// Rod automatically downloads Chromium on first run if not found.
//
// The browser is launched on the first snapshot and owned until Close.
// Each snapshot mounts a fresh node, screenshots its box and removes it.
type rodSurface struct {
	template string
	logger   *slog.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	seq      int
}

func newRodSurface(template string, logger *slog.Logger) *rodSurface {
	return &rodSurface{template: template, logger: logger}
}

// ensurePage lazily launches the browser and loads the surface template.
func (s *rodSurface) ensurePage() error {
	if s.page != nil {
		return nil
	}

	if s.browser == nil {
		l := newLauncher()
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}

		browser := rod.New().ControlURL(u)
		if err := browser.Connect(); err != nil {
			l.Kill()
			return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}
		s.launcher = l
		s.browser = browser
		s.logger.Debug("browser launched", "pid", l.PID())
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	if err := page.SetDocumentContent(s.template); err != nil {
		_ = page.Close()
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	s.page = page
	return nil
}

// newLauncher configures Chrome from the environment.
func newLauncher() *launcher.Launcher {
	l := launcher.New().Leakless(true)

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	return l
}

// Snapshot renders req.Markup and returns PNG bytes at req.PixelRatio.
func (s *rodSurface) Snapshot(ctx context.Context, req mathrender.SnapshotRequest) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensurePage(); err != nil {
		return nil, err
	}

	s.seq++
	id := "eq-" + strconv.Itoa(s.seq)
	page := s.page.Context(ctx)

	if _, err := page.Eval(mountScript, id, req.Markup, req.FontSize, req.Padding, req.Display); err != nil {
		// The mount may have partially succeeded before the context expired.
		s.unmount(id)
		return nil, fmt.Errorf("%w: mounting equation: %v", ErrSnapshot, err)
	}
	defer s.unmount(id)

	el, err := page.Element("#" + id)
	if err != nil {
		return nil, fmt.Errorf("%w: locating equation: %v", ErrSnapshot, err)
	}
	shape, err := el.Shape()
	if err != nil {
		return nil, fmt.Errorf("%w: measuring equation: %v", ErrSnapshot, err)
	}
	box := shape.Box()
	if box == nil || box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("%w: equation has an empty box", ErrSnapshot)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Scale:  req.PixelRatio,
		},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: capturing equation: %v", ErrSnapshot, err)
	}
	return data, nil
}

// unmount removes the equation node. It ignores the snapshot context so the
// node is removed even after a timeout.
func (s *rodSurface) unmount(id string) {
	if s.page == nil {
		return
	}
	if _, err := s.page.Eval(unmountScript, id); err != nil {
		s.logger.Debug("equation node not removed", "id", id, "error", err)
	}
}

// Close releases browser resources and kills the Chrome process group.
// Safe to call more than once.
func (s *rodSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		if kerr := process.KillTree(s.launcher.PID()); kerr != nil {
			s.logger.Debug("killing browser process group", "error", kerr)
		}
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}
