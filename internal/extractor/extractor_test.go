package extractor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/usecase/media"
)

const base = "http://localhost:9000/blog-media"

type urlRepo struct {
	port.MediaRepository

	byURL  map[string]*model.Media
	getErr error
}

func (r *urlRepo) GetByURL(ctx context.Context, url string) (*model.Media, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	m, ok := r.byURL[url]
	if !ok {
		return nil, media.ErrMediaNotFound
	}
	return m, nil
}

func TestExtractEmbeddedURLs_QuotingVariants(t *testing.T) {
	content := `<p>intro</p>
<img src="http://a/1.jpg" alt="one">
<img src='http://a/2.jpg'/>
<img src=http://a/3.jpg >
<img alt="no src here">`

	got := ExtractEmbeddedURLs(content)
	want := []string{"http://a/1.jpg", "http://a/2.jpg", "http://a/3.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractEmbeddedURLs_PreservesOrder(t *testing.T) {
	content := `<img src="http://a/z.jpg"><img src="http://a/a.jpg"><img src="http://a/m.jpg">`
	got := ExtractEmbeddedURLs(content)
	want := []string{"http://a/z.jpg", "http://a/a.jpg", "http://a/m.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractEmbeddedURLs_EmptyInput(t *testing.T) {
	if got := ExtractEmbeddedURLs(""); len(got) != 0 {
		t.Errorf("expected no urls, got %v", got)
	}
	if got := ExtractEmbeddedURLs("plain text, no markup"); len(got) != 0 {
		t.Errorf("expected no urls, got %v", got)
	}
}

func TestFilterOwnAssetURLs(t *testing.T) {
	e := New(&urlRepo{}, base)
	urls := []string{
		base + "/travel/pic.jpg",
		"https://cdn.example.com/x.jpg",
		base + "/docs/file.pdf",
		"http://localhost:9000/other-bucket/y.jpg",
	}
	got := e.FilterOwnAssetURLs(urls)
	want := []string{base + "/travel/pic.jpg", base + "/docs/file.pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractAssetIDs_RoundTrip(t *testing.T) {
	repo := &urlRepo{byURL: map[string]*model.Media{
		base + "/f/a.jpg": {ID: "id-a", URL: base + "/f/a.jpg"},
		base + "/f/b.jpg": {ID: "id-b", URL: base + "/f/b.jpg"},
	}}
	e := New(repo, base)

	content := `<img src="` + base + `/f/a.jpg">` +
		`<img src="https://elsewhere.net/ext.jpg">` +
		`<img src="` + base + `/f/b.jpg">` +
		`<img src="` + base + `/f/purged.jpg">`

	ids, err := e.ExtractAssetIDs(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"id-a", "id-b"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestExtractAssetIDs_DeduplicatesRepeatedEmbeds(t *testing.T) {
	repo := &urlRepo{byURL: map[string]*model.Media{
		base + "/f/a.jpg": {ID: "id-a", URL: base + "/f/a.jpg"},
	}}
	e := New(repo, base)

	content := `<img src="` + base + `/f/a.jpg"><img src="` + base + `/f/a.jpg">`
	ids, err := e.ExtractAssetIDs(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "id-a" {
		t.Errorf("expected a single id-a, got %v", ids)
	}
}

func TestExtractAssetIDs_RepositoryErrorPropagates(t *testing.T) {
	repo := &urlRepo{getErr: errors.New("db down")}
	e := New(repo, base)

	_, err := e.ExtractAssetIDs(context.Background(), `<img src="`+base+`/f/a.jpg">`)
	if err == nil {
		t.Fatal("expected an error")
	}
}
