package pipeline

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/clausecheck/clausecheck/internal/cache"
	"github.com/clausecheck/clausecheck/internal/model"
	"github.com/clausecheck/clausecheck/internal/util"
	"github.com/clausecheck/clausecheck/internal/worker"
)

// Fetcher retrieves policy document text from URLs. Fetches respect
// robots.txt, are rate limited per domain, and hit a TTL cache keyed by
// source URL. PDF bodies are rejected; text extraction from binaries is an
// external capability.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache
}

// NewFetcher creates a fetcher from the HTTP configuration. textCache may be
// nil to disable caching.
func NewFetcher(cfg model.HTTPConfig, textCache cache.Cache) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cache:     textCache,
	}
}

// Fetch retrieves the document at rawURL and returns its text content.
// HTML responses are reduced to visible text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.cache != nil {
		if cached, ok := f.cache.Get(cache.DocumentKey(rawURL)); ok {
			return string(cached), nil
		}
	}

	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.Allowed(ctx, rawURL)
		if err != nil {
			return "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("fetch %s: disallowed by robots.txt", rawURL)
		}
		crawlDelay = delay
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain,text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text, err := bodyText(resp.Header.Get("Content-Type"), body)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		_ = f.cache.Set(cache.DocumentKey(rawURL), []byte(text), 0)
	}

	return text, nil
}

// bodyText converts a fetched body to plain text. PDF content is rejected.
func bodyText(contentType string, body []byte) (string, error) {
	if strings.Contains(contentType, "application/pdf") || bytes.HasPrefix(body, []byte("%PDF-")) {
		return "", fmt.Errorf("document is a PDF; extract its text before ingesting")
	}

	if strings.Contains(contentType, "text/html") || looksLikeHTML(body) {
		return visibleText(body)
	}

	return string(body), nil
}

func looksLikeHTML(body []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// visibleText extracts text nodes from HTML, skipping scripts and styles.
func visibleText(body []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}
