package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"printfind/internal/browser"
)

// BrowserFetcher renders catalog pages in headless Chromium before returning
// their markup. Use it for catalogs that only populate results from scripts.
// The browser is launched on first use and shared by concurrent fetches,
// each of which gets its own tab.
type BrowserFetcher struct {
	cfg       browser.Config
	userAgent string
	timeout   time.Duration
	launch    func(browser.Config) (*browser.Browser, error)

	mu sync.Mutex
	b  *browser.Browser
}

// NewBrowserFetcher creates a BrowserFetcher. Nothing is launched until the
// first Fetch.
func NewBrowserFetcher(cfg browser.Config, userAgent string, timeout time.Duration) *BrowserFetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &BrowserFetcher{
		cfg:       cfg,
		userAgent: userAgent,
		timeout:   timeout,
		launch:    browser.New,
	}
}

// Fetch navigates a fresh tab to target and returns the rendered HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, target string) (string, error) {
	b, err := f.ensureBrowser()
	if err != nil {
		return "", err
	}

	page, err := b.NewPage()
	if err != nil {
		return "", err
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx)

	if f.userAgent != "" {
		_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      f.userAgent,
			AcceptLanguage: AcceptLanguage,
		})
	}
	_, _ = page.EvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`)

	if err := page.Timeout(f.timeout).Navigate(target); err != nil {
		return "", eris.Wrap(err, "browser: navigate")
	}
	if err := page.Timeout(f.timeout).WaitLoad(); err != nil {
		return "", eris.Wrap(err, "browser: wait load")
	}

	// Result grids are filled by scripts after load; wait for the network to
	// settle, ignoring image traffic.
	wait := page.Timeout(f.timeout).WaitRequestIdle(
		500*time.Millisecond, nil, nil,
		[]proto.NetworkResourceType{proto.NetworkResourceTypeImage, proto.NetworkResourceTypeMedia},
	)
	wait()

	html, err := page.Timeout(10 * time.Second).HTML()
	if err != nil {
		return "", eris.Wrap(err, "browser: read html")
	}
	return html, nil
}

// Close shuts down the browser if one was launched.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.b == nil {
		return nil
	}
	err := f.b.Close()
	f.b = nil
	return err
}

func (f *BrowserFetcher) ensureBrowser() (*browser.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.b != nil {
		return f.b, nil
	}
	b, err := f.launch(f.cfg)
	if err != nil {
		return nil, err
	}
	f.b = b
	zap.L().Info("browser launched", zap.Bool("headless", f.cfg.Headless), zap.String("proxy", b.ProxyURL()))
	return b, nil
}
