package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"miniscraper/config"
	"miniscraper/steps"
)

const (
	popupWait   = 10 * time.Second
	controlWait = 5 * time.Second
	settleWait  = 2 * time.Second
)

// BrowserFetcher drives a Chrome instance to the puzzle page, reveals the
// solution and returns the resulting markup.
type BrowserFetcher struct {
	URL      string
	Headless bool
	Reveal   config.Reveal
	Log      *zap.Logger
	Steps    *steps.Reporter
}

// NewBrowserFetcher builds a fetcher from the run configuration.
func NewBrowserFetcher(cfg *config.Config, log *zap.Logger, st *steps.Reporter) *BrowserFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &BrowserFetcher{URL: cfg.URL, Headless: cfg.Headless, Reveal: cfg.Reveal, Log: log, Steps: st}
}

func (f *BrowserFetcher) Fetch(ctx context.Context) (string, error) {
	l := launcher.New().Context(ctx).Headless(f.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()
	f.Steps.Step("Web driver is ready.")

	f.Steps.Step("Opening the website...", zap.String("url", f.URL))
	page, err := browser.Page(proto.TargetCreateTarget{URL: f.URL})
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.URL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	// The welcome popup does not show on every visit.
	f.Steps.Step("Closing the pop up...")
	if err := clickXPath(page, f.Reveal.Popup, popupWait); err != nil {
		f.Log.Warn("Welcome popup not dismissed", zap.Error(err))
	}

	f.Steps.Step("Clicking reveal...")
	for _, control := range []struct{ name, xpath string }{
		{"reveal button", f.Reveal.Button},
		{"reveal puzzle option", f.Reveal.Option},
		{"reveal confirmation", f.Reveal.Confirm},
	} {
		if err := clickXPath(page, control.xpath, controlWait); err != nil {
			return "", fmt.Errorf("click %s: %w", control.name, err)
		}
		f.Log.Debug("Clicked", zap.String("control", control.name))
	}
	f.Steps.Step("Reveal is done.")

	if err := page.WaitIdle(settleWait); err != nil {
		f.Log.Debug("Page did not go idle after reveal", zap.Error(err))
	}

	f.Steps.Step("Downloading the web content...")
	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page HTML: %w", err)
	}
	return html, nil
}

func clickXPath(page *rod.Page, xpath string, wait time.Duration) error {
	el, err := page.Timeout(wait).ElementX(xpath)
	if err != nil {
		return fmt.Errorf("find %s: %w", xpath, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}
