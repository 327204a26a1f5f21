package admin

import (
	"context"
	"errors"
	"folio/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVSlot_DefaultBeforeRefresh(t *testing.T) {
	s := NewCVSlot(newFakeBackend(), newMemCache(), newFakeNotifier(), nil)

	url, source := s.Current()
	assert.Equal(t, models.DefaultCVURL, url)
	assert.Equal(t, CVSourceDefault, source)
}

func TestCVSlot_Refresh(t *testing.T) {
	tests := []struct {
		name       string
		backendDoc *models.CVDocument
		backendErr error
		cached     string
		wantURL    string
		wantSource CVSource
		wantCache  string
	}{
		{
			name:       "backend wins over cache",
			backendDoc: &models.CVDocument{URL: "https://files.test/new.pdf", Filename: "cv.pdf"},
			cached:     "https://files.test/old.pdf",
			wantURL:    "https://files.test/new.pdf",
			wantSource: CVSourceBackend,
			wantCache:  "https://files.test/new.pdf",
		},
		{
			name:       "no backend document uses cache",
			cached:     "https://files.test/old.pdf",
			wantURL:    "https://files.test/old.pdf",
			wantSource: CVSourceCache,
			wantCache:  "https://files.test/old.pdf",
		},
		{
			name:       "unreachable backend uses cache",
			backendErr: errors.New("dial tcp: connection refused"),
			cached:     "https://files.test/old.pdf",
			wantURL:    "https://files.test/old.pdf",
			wantSource: CVSourceCache,
			wantCache:  "https://files.test/old.pdf",
		},
		{
			name:       "nothing anywhere",
			wantURL:    models.DefaultCVURL,
			wantSource: CVSourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			b.cv = tt.backendDoc
			b.cvErr = tt.backendErr
			cache := newMemCache()
			if tt.cached != "" {
				cache.vals[CVCacheKey] = tt.cached
			}
			n := newFakeNotifier()
			s := NewCVSlot(b, cache, n, nil)

			require.NoError(t, s.Reload(context.Background()))

			url, source := s.Current()
			assert.Equal(t, tt.wantURL, url)
			assert.Equal(t, tt.wantSource, source)
			got, _ := cache.Get(CVCacheKey)
			assert.Equal(t, tt.wantCache, got)
			assert.Empty(t, n.Alerts())
		})
	}
}

func TestCVSlot_UploadRejectsNonPDF(t *testing.T) {
	b := newFakeBackend()
	cache := newMemCache()
	n := newFakeNotifier()
	s := NewCVSlot(b, cache, n, nil)

	err := s.Upload(context.Background(), "cv.pdf", []byte("plain text pretending to be a pdf"))

	assert.ErrorIs(t, err, ErrNotPDF)
	assert.Zero(t, b.count("UploadCV"))
	assert.Len(t, n.Alerts(), 1)
	url, _ := s.Current()
	assert.Equal(t, models.DefaultCVURL, url)
	assert.Empty(t, cache.vals)
}

func TestCVSlot_UploadReplacesReference(t *testing.T) {
	b := newFakeBackend()
	cache := newMemCache()
	s := NewCVSlot(b, cache, newFakeNotifier(), nil)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "first.pdf", samplePDF))
	first, source := s.Current()
	assert.Equal(t, CVSourceBackend, source)
	assert.Equal(t, "first.pdf", s.Filename())

	require.NoError(t, s.Upload(ctx, "second.pdf", samplePDF))
	second, _ := s.Current()
	assert.NotEqual(t, first, second)

	cached, _ := cache.Get(CVCacheKey)
	assert.Equal(t, second, cached)

	// The replacement is what the next read sees.
	require.NoError(t, s.Reload(ctx))
	current, _ := s.Current()
	assert.Equal(t, second, current)
}

func TestCVSlot_UploadFailure(t *testing.T) {
	b := newFakeBackend()
	b.cvErr = errors.New("bucket unavailable")
	n := newFakeNotifier()
	s := NewCVSlot(b, newMemCache(), n, nil)

	err := s.Upload(context.Background(), "cv.pdf", samplePDF)

	require.Error(t, err)
	assert.False(t, s.Uploading())
	require.Len(t, n.Alerts(), 1)
	assert.Contains(t, n.Alerts()[0], "bucket unavailable")
}

func TestCVSlot_DoubleUploadRejected(t *testing.T) {
	b := newFakeBackend()
	s := NewCVSlot(b, newMemCache(), newFakeNotifier(), nil)
	started, release := blockCall(b, "UploadCV")

	errs := make(chan error, 1)
	go func() { errs <- s.Upload(context.Background(), "cv.pdf", samplePDF) }()
	<-started

	assert.ErrorIs(t, s.Upload(context.Background(), "cv.pdf", samplePDF), ErrSubmitInFlight)
	release()
	require.NoError(t, <-errs)
	assert.Equal(t, 1, b.count("UploadCV"))
}

func TestCVSlot_UploadSupersedesRefresh(t *testing.T) {
	b := newFakeBackend()
	s := NewCVSlot(b, newMemCache(), newFakeNotifier(), nil)
	ctx := context.Background()
	started, release := blockCall(b, "CurrentCV")

	errs := make(chan error, 1)
	go func() { errs <- s.Reload(ctx) }()
	<-started

	require.NoError(t, s.Upload(ctx, "cv.pdf", samplePDF))
	uploaded, _ := s.Current()
	release()

	assert.ErrorIs(t, <-errs, ErrStale)
	current, source := s.Current()
	assert.Equal(t, uploaded, current)
	assert.Equal(t, CVSourceBackend, source)
}
