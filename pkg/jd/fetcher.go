package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// Fetcher retrieves job postings over HTTP.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) (fetcher *Fetcher) {
	fetcher = &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "resume-studio/1.0",
	}
	return fetcher
}

// Fetch retrieves job description from file or URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves job description with context.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	if isHTTPURL(input) {
		content, err = NewFetcher(DefaultTimeout).FetchURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch JD from URL: %s", input)
			return content, err
		}
		return content, err
	}

	// It's a file path - read from disk
	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch JD from file: %s", input)
		return content, err
	}

	return content, err
}

// FetchURL downloads a page and returns its visible text. Only http and https
// URLs are accepted.
func (f *Fetcher) FetchURL(ctx context.Context, urlStr string) (content string, err error) {
	if !isHTTPURL(urlStr) {
		err = errors.Errorf("not an http(s) URL: %q", urlStr)
		return content, err
	}

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", f.userAgent)

	var resp *http.Response
	resp, err = f.httpClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	content, err = HTMLToText(resp.Body)
	if err != nil {
		return content, err
	}

	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// HTMLToText returns the text of an HTML document with script, style and
// noscript elements removed and all whitespace runs collapsed to one space.
func HTMLToText(r io.Reader) (text string, err error) {
	var doc *html.Node
	doc, err = html.Parse(r)
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return text, err
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text = strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	return text, err
}

// Truncate shortens text to at most n runes.
func Truncate(text string, n int) (truncated string) {
	truncated = text
	if n < 0 || utf8.RuneCountInString(text) <= n {
		return truncated
	}
	runes := []rune(text)
	truncated = string(runes[:n])
	return truncated
}

func isHTTPURL(input string) (ok bool) {
	parsedURL, err := url.Parse(input)
	ok = err == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") && parsedURL.Host != ""
	return ok
}

// fetchFromFile reads job description from a file.
func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if content == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}
