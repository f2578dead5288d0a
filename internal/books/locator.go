package books

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bookgrab/bookgrab/internal/model"
)

// BaseURL is the root of the remote document service.
var BaseURL = "https://books.google.com"

// ResolveID extracts the canonical document identifier from a free
// form address.
//
// Two address shapes are accepted:
//
//	old style: https://books.google.com/books?id=$id&$other_args
//	new style: https://www.google.com/books/edition/$title/$id?$args
//
// The id query parameter wins when present; otherwise the final path
// segment is used. Returns ErrInvalidLocator when neither yields a
// non-empty value.
func ResolveID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}

	if id := u.Query().Get("id"); id != "" {
		return id, nil
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if last := segments[len(segments)-1]; last != "" {
		return last, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidLocator, rawURL)
}

// CanonicalURL returns the basic old-style landing page URL for a
// document identifier.
func CanonicalURL(id string) string {
	return fmt.Sprintf("%s/books?id=%s", BaseURL, url.QueryEscape(id))
}

// DiscoveryURL returns the page-discovery API URL for one round of
// the pagination protocol. firstPage is the pid of the document's
// first resolved page ("1" on the seed round), pid the page being
// requested.
func DiscoveryURL(id, firstPage, pid string) string {
	return fmt.Sprintf("%s&lpg=%s&pg=%s&jscmd=click3",
		CanonicalURL(id), url.QueryEscape(firstPage), url.QueryEscape(pid))
}

// TileURL returns the signed tile endpoint URL for one tile of a
// segmented page. tid is the per-page monotonic tile index.
func TileURL(id, pid string, g model.TileGeometry, tid int) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("pg", pid)
	q.Set("img", "1")
	q.Set("zoom", fmt.Sprint(g.Zoom))
	q.Set("x", fmt.Sprint(g.X))
	q.Set("y", fmt.Sprint(g.Y))
	q.Set("tid", fmt.Sprint(tid))
	q.Set("sig", g.Sig)
	return fmt.Sprintf("%s/books/content?%s", BaseURL, q.Encode())
}
