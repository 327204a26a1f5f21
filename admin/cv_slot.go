package admin

import (
	"context"
	"errors"
	"fmt"
	"folio/models"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// CVCacheKey is where the last known CV reference is cached.
const CVCacheKey = "cvFile"

// CVSource says where the current CV reference came from.
type CVSource int

const (
	CVSourceDefault CVSource = iota
	CVSourceCache
	CVSourceBackend
)

func (s CVSource) String() string {
	switch s {
	case CVSourceCache:
		return "cache"
	case CVSourceBackend:
		return "backend"
	}
	return "default"
}

// CVSlot holds the single current CV reference. The backend is the
// source of truth; the cache is only read when the backend has no
// document or cannot be reached.
type CVSlot struct {
	backend CVBackend
	cache   RefCache
	notify  Notifier
	logger  *zap.Logger

	mu        sync.Mutex
	url       string
	source    CVSource
	filename  string
	uploading bool
	gen       uint64
}

func NewCVSlot(backend CVBackend, cache RefCache, notify Notifier, logger *zap.Logger) *CVSlot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CVSlot{
		backend: backend,
		cache:   cache,
		notify:  notify,
		logger:  logger.With(zap.String("slot", "cv")),
		url:     models.DefaultCVURL,
	}
}

// Current returns the CV reference and where it came from.
func (s *CVSlot) Current() (string, CVSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, s.source
}

// Filename is the uploaded file's name when the reference came from the backend.
func (s *CVSlot) Filename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename
}

// Reload resolves the current reference. It never alerts; an
// unreachable backend falls back to the cache and then to the default.
func (s *CVSlot) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	doc, err := s.backend.CurrentCV(ctx)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Warn("cv lookup failed, using fallback", zap.Error(err))
	}

	var (
		url      = models.DefaultCVURL
		source   = CVSourceDefault
		filename string
	)
	switch {
	case err == nil:
		url, source, filename = doc.URL, CVSourceBackend, doc.Filename
	default:
		if cached, ok := s.cache.Get(CVCacheKey); ok && cached != "" {
			url, source = cached, CVSourceCache
		}
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return ErrStale
	}
	s.url, s.source, s.filename = url, source, filename
	s.mu.Unlock()

	if source == CVSourceBackend {
		s.writeCache(url)
	}
	return nil
}

func (s *CVSlot) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
}

// Upload replaces the CV with data. Content that is not a PDF is
// rejected before anything is sent.
func (s *CVSlot) Upload(ctx context.Context, filename string, data []byte) error {
	if !mimetype.Detect(data).Is(models.PDFContentType) {
		s.notify.Alert("Please upload a PDF file.")
		return ErrNotPDF
	}

	s.mu.Lock()
	if s.uploading {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.uploading = true
	s.mu.Unlock()

	doc, err := s.backend.UploadCV(ctx, filename, data)

	s.mu.Lock()
	s.uploading = false
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("cv upload failed", zap.Error(err))
		s.notify.Alert(fmt.Sprintf("Error uploading CV: %v", err))
		return err
	}
	// Supersedes any refresh still in flight.
	s.gen++
	s.url, s.source, s.filename = doc.URL, CVSourceBackend, doc.Filename
	s.mu.Unlock()

	s.writeCache(doc.URL)
	return nil
}

func (s *CVSlot) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

func (s *CVSlot) writeCache(url string) {
	if err := s.cache.Set(CVCacheKey, url); err != nil {
		s.logger.Warn("failed to cache cv reference", zap.Error(err))
	}
}
