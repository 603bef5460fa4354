// Package culler checks bookmark links for dead or unreachable targets.
package culler

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/reservoir/internal/logger"
	"github.com/nikbrunner/reservoir/internal/model"
)

// Status represents the health status of a link.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark   *model.Bookmark
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // reason for unreachable links
}

// ProgressFunc is called after each link is checked.
type ProgressFunc func(completed, total int)

// Options configures a check run.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	// ExcludeDomains lists domains where 404s mean "possibly private"
	// rather than dead. Subdomains match too.
	ExcludeDomains []string
	OnProgress     ProgressFunc
	Logger         logger.Logger
}

// CheckLinks checks every bookmark link concurrently. Results keep the
// order of bookmarks. Cancelling ctx marks unchecked links unreachable.
func CheckLinks(ctx context.Context, bookmarks []*model.Bookmark, opts Options) []Result {
	if len(bookmarks) == 0 {
		return nil
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	// net/http logs protocol noise through the standard logger
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	excludeMap := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	results := make([]Result, len(bookmarks))
	jobs := make(chan int, len(bookmarks))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkLink(ctx, client, bookmarks[idx], excludeMap)
				opts.Logger.Debug("checked link",
					logger.String("link", bookmarks[idx].Link),
					logger.String("status", results[idx].Status.String()),
					logger.Int("code", results[idx].StatusCode))

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(bookmarks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// checkLink checks a single link and returns the result.
func checkLink(ctx context.Context, client *http.Client, bookmark *model.Bookmark, excludeMap map[string]bool) Result {
	result := Result{Bookmark: bookmark}
	target := model.ExternalLink(bookmark.Link)

	// HEAD first, GET for servers that reject it
	resp, err := do(ctx, client, http.MethodHead, target)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		resp.Body.Close()
		resp, err = do(ctx, client, http.MethodGet, target)
	} else if err != nil && ctx.Err() == nil {
		resp, err = do(ctx, client, http.MethodGet, target)
	}
	if err != nil {
		result.Status = Unreachable
		result.Error = normalizeError(err.Error())
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(target, excludeMap) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 5xx, 403 and friends may be temporary or auth-gated
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain checks if the link's host is an excluded domain or
// one of its subdomains.
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if excludeMap[host] {
		return true
	}
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}

// Summary counts results per status.
type Summary struct {
	Healthy     int
	Dead        int
	Unreachable int
}

// Summarize counts results per status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case Healthy:
			s.Healthy++
		case Dead:
			s.Dead++
		default:
			s.Unreachable++
		}
	}
	return s
}
