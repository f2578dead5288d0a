package books

import "testing"

func TestPeriodURLs(t *testing.T) {
	html := `<html><body><div id="period_selector">
	<a href="/books/serial?id=X&y=1968">1968</a>
	<a href="">1969</a>
	<a href="/books/serial?id=X&y=1970">1970</a>
	</div></body></html>`

	urls := PeriodURLs(parseDoc(t, html), "https://host/self")
	want := []string{"/books/serial?id=X&y=1968", "https://host/self", "/books/serial?id=X&y=1970"}
	if len(urls) != len(want) {
		t.Fatalf("got %d URLs, want %d", len(urls), len(want))
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestPeriodURLsWithoutSelector(t *testing.T) {
	urls := PeriodURLs(parseDoc(t, `<html><body></body></html>`), "https://host/self")
	if len(urls) != 1 || urls[0] != "https://host/self" {
		t.Errorf("urls = %v, want just the page itself", urls)
	}
}

func TestIssueURLs(t *testing.T) {
	html := `<html><body>
	<div class="allissues_gallerycell"><a href="/books?id=A"><img></a><a href="/other">x</a></div>
	<div class="allissues_gallerycell"><a href="/books?id=B"><img></a></div>
	</body></html>`

	urls := IssueURLs(parseDoc(t, html))
	if len(urls) != 2 || urls[0] != "/books?id=A" || urls[1] != "/books?id=B" {
		t.Errorf("urls = %v", urls)
	}
}
