package render

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"transport-backend/internal/config"
)

const defaultCaptureTimeout = 30 * time.Second

// ChromedpSurface rasterizes documents in a headless Chrome instance via
// the DevTools protocol.
type ChromedpSurface struct {
	cfg         config.RenderConfig
	timeout     time.Duration
	settleDelay time.Duration
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewChromedpSurface(cfg config.RenderConfig) *ChromedpSurface {
	s := &ChromedpSurface{
		cfg:         cfg,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		settleDelay: time.Duration(cfg.SettleDelayMS) * time.Millisecond,
	}
	if s.timeout <= 0 {
		s.timeout = defaultCaptureTimeout
	}
	s.initAllocator()
	return s
}

func (s *ChromedpSurface) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if s.cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if s.cfg.RemoteURL != "" {
		s.allocCtx, s.allocCancel = chromedp.NewRemoteAllocator(context.Background(), s.cfg.RemoteURL)
	} else {
		s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
}

// Capture renders the document at the forced viewport width, waits a fixed
// settle delay for layout to stabilize, and screenshots the full scroll
// height in one image.
func (s *ChromedpSurface) Capture(ctx context.Context, html string, opts Options) (*Image, error) {
	if opts.Width <= 0 {
		opts.Width = s.cfg.CaptureWidth
	}
	if opts.Scale <= 0 {
		opts.Scale = s.cfg.Scale
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(s.allocCtx)
	defer browserCancel()

	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDeviceMetricsOverride(int64(opts.Width), 0, opts.Scale, false).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if opts.Background == "" {
				return nil
			}
			rgba, err := parseHexColor(opts.Background)
			if err != nil {
				return err
			}
			return emulation.SetDefaultBackgroundColorOverride().WithColor(rgba).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.Sleep(s.settleDelay),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("document capture timed out after %v: %w", s.timeout, err)
		}
		return nil, fmt.Errorf("document capture failed: %w", err)
	}
	if len(shot) == 0 {
		return nil, fmt.Errorf("document capture produced an empty image")
	}

	dims, err := png.DecodeConfig(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("captured image is not decodable: %w", err)
	}

	return &Image{PNG: shot, Width: dims.Width, Height: dims.Height}, nil
}

func parseHexColor(s string) (*cdp.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid background color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	return &cdp.RGBA{
		R: int64(v >> 16 & 0xff),
		G: int64(v >> 8 & 0xff),
		B: int64(v & 0xff),
		A: 1,
	}, nil
}

// Close releases the browser allocator.
func (s *ChromedpSurface) Close() error {
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}

var _ Surface = (*ChromedpSurface)(nil)
