package books

import (
	"errors"
	"strings"
	"testing"

	"github.com/bookgrab/bookgrab/internal/model"
)

func TestResolveID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "old style with id parameter",
			url:  "https://books.google.com/books?id=FAKE_ID&a=aa&b=bb&c=1",
			want: "FAKE_ID",
		},
		{
			name: "new style edition path",
			url:  "https://www.google.com/books/edition/_/FAKE_ID?a=aa&b=bb",
			want: "FAKE_ID",
		},
		{
			name: "id parameter wins over path",
			url:  "https://books.google.com/books/edition/Title/WRONG?id=RIGHT",
			want: "RIGHT",
		},
		{
			name: "trailing slash falls back to last segment",
			url:  "https://www.google.com/books/edition/Title/FAKE_ID/",
			want: "FAKE_ID",
		},
		{
			name:    "no id and empty path",
			url:     "https://host/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, ErrInvalidLocator) {
					t.Errorf("error %v is not ErrInvalidLocator", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalURL(t *testing.T) {
	got := CanonicalURL("FAKE_ID")
	want := "https://books.google.com/books?id=FAKE_ID"
	if got != want {
		t.Errorf("CanonicalURL() = %q, want %q", got, want)
	}
}

func TestDiscoveryURL(t *testing.T) {
	got := DiscoveryURL("BOOK", "PA1", "PA7")
	want := "https://books.google.com/books?id=BOOK&lpg=PA1&pg=PA7&jscmd=click3"
	if got != want {
		t.Errorf("DiscoveryURL() = %q, want %q", got, want)
	}
}

func TestTileURL(t *testing.T) {
	g := model.TileGeometry{Width: 6000, Height: 8000, Zoom: 6, X: 411, Y: 1162, Sig: "ACfU3U0"}
	got := TileURL("BOOK", "PA2", g, 7)

	for _, param := range []string{"id=BOOK", "pg=PA2", "zoom=6", "x=411", "y=1162", "tid=7", "sig=ACfU3U0"} {
		if !strings.Contains(got, param) {
			t.Errorf("TileURL() = %q, missing %q", got, param)
		}
	}
	if !strings.HasPrefix(got, "https://books.google.com/books/content?") {
		t.Errorf("TileURL() = %q, wrong endpoint", got)
	}
}
