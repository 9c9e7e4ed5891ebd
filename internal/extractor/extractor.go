package extractor

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/net/html"

	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/usecase/media"
)

// Extractor resolves embedded asset URLs in rich-text content to the ids
// of live media records. Only URLs under this store's own base address are
// considered; third-party URLs are never tracked.
type Extractor struct {
	repo    port.MediaRepository
	baseURL string
}

// compile-time check: *Extractor must satisfy port.ContentResolver
var _ port.ContentResolver = (*Extractor)(nil)

func New(repo port.MediaRepository, baseURL string) *Extractor {
	return &Extractor{repo: repo, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// ExtractEmbeddedURLs scans content for embedded-image markup and returns
// every src attribute value in first-seen order. The tokenizer copes with
// single, double and unquoted attributes alike. Empty input yields an
// empty slice.
func ExtractEmbeddedURLs(content string) []string {
	if content == "" {
		return nil
	}

	var urls []string
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// end of input or malformed tail, either way we are done
			return urls
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "img" || !hasAttr {
			continue
		}
		for {
			key, val, more := z.TagAttr()
			if string(key) == "src" && len(val) > 0 {
				urls = append(urls, string(val))
			}
			if !more {
				break
			}
		}
	}
}

// FilterOwnAssetURLs keeps the URLs pointing at this store's endpoint and
// bucket. Everything else (CDNs, hotlinks) is dropped.
func (e *Extractor) FilterOwnAssetURLs(urls []string) []string {
	var own []string
	for _, u := range urls {
		if strings.HasPrefix(u, e.baseURL+"/") {
			own = append(own, u)
		}
	}
	return own
}

// ResolveURLs looks each URL up in the registry and keeps the ids of live
// matches. URLs with no matching live asset are dropped silently: content
// may legitimately reference an asset that was purged since.
func (e *Extractor) ResolveURLs(ctx context.Context, urls []string) ([]string, error) {
	var ids []string
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		m, err := e.repo.GetByURL(ctx, u)
		if err != nil {
			if errors.Is(err, media.ErrMediaNotFound) {
				log.Printf("embedded url %q matches no live media, skipping", u)
				continue
			}
			return nil, err
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// ExtractAssetIDs composes scan, filter and resolution. This is the entry
// point the usage tracker goes through.
func (e *Extractor) ExtractAssetIDs(ctx context.Context, content string) ([]string, error) {
	urls := ExtractEmbeddedURLs(content)
	return e.ResolveURLs(ctx, e.FilterOwnAssetURLs(urls))
}
