// Package provider caches parsed documents for editor and CLI consumers.
// Each document version is parsed at most once. Documents parse in parallel,
// and each parse uses its own scanner and parser.
package provider

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/helios/pkg/parser"
)

// Source is one document handed to ParseAll. A zero Version marks an
// unversioned document, which is matched by content instead (see Refresh).
type Source struct {
	URI     string
	Content string
	Version int
}

// Provider caches the latest parsed version of each document.
type Provider struct {
	// Document cache (keyed by URI)
	documents   map[string]*ParsedDocument
	documentsMu sync.RWMutex

	opts   []parser.Option
	limit  int
	logger *slog.Logger
}

// New creates a Provider. The parser options apply to every parse. A nil
// logger discards output.
func New(logger *slog.Logger, opts ...parser.Option) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{
		documents: make(map[string]*ParsedDocument),
		opts:      append([]parser.Option{parser.WithLogger(logger)}, opts...),
		limit:     runtime.GOMAXPROCS(0),
		logger:    logger,
	}
}

// SetConcurrency bounds the number of documents ParseAll parses at once.
func (p *Provider) SetConcurrency(n int) {
	if n > 0 {
		p.limit = n
	}
}

// GetOrParse returns the cached document if it is at least version, and
// parses content otherwise. A parse that finishes after a newer version was
// cached is discarded and the newer entry is returned.
// Thread-safe for concurrent access.
func (p *Provider) GetOrParse(uri string, content string, version int) *ParsedDocument {
	if doc := p.cached(uri, version); doc != nil {
		return doc
	}

	// Parse outside the lock; documents do not share parser state.
	doc := Parse(content, uri, version, p.opts...)

	p.documentsMu.Lock()
	defer p.documentsMu.Unlock()

	if cur, ok := p.documents[uri]; ok && cur.Version >= version {
		p.logger.Debug("provider: discarding stale parse", "uri", uri, "version", version, "cached", cur.Version)
		return cur
	}
	p.documents[uri] = doc
	return doc
}

func (p *Provider) cached(uri string, version int) *ParsedDocument {
	p.documentsMu.RLock()
	defer p.documentsMu.RUnlock()

	if doc, ok := p.documents[uri]; ok && doc.Version >= version {
		return doc
	}
	return nil
}

// Refresh returns the cached document when its content equals content, and
// parses content otherwise. It serves callers without version numbers, such
// as files read from disk; each new content gets the next version for uri.
// Thread-safe for concurrent access.
func (p *Provider) Refresh(uri string, content string) *ParsedDocument {
	p.documentsMu.RLock()
	cur, ok := p.documents[uri]
	p.documentsMu.RUnlock()
	if ok && cur.Content == content {
		return cur
	}

	doc := Parse(content, uri, 0, p.opts...)

	p.documentsMu.Lock()
	defer p.documentsMu.Unlock()

	cur, ok = p.documents[uri]
	if ok && cur.Content == content {
		return cur
	}
	doc.Version = 1
	if ok {
		doc.Version = cur.Version + 1
	}
	p.documents[uri] = doc
	return doc
}

// ParseAll parses docs in parallel and returns the results in input order.
// It stops early with the context's error when ctx is cancelled; documents
// already parsed stay cached.
func (p *Provider) ParseAll(ctx context.Context, docs []Source) ([]*ParsedDocument, error) {
	start := time.Now()
	out := make([]*ParsedDocument, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for i, src := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if src.Version == 0 {
				out[i] = p.Refresh(src.URI, src.Content)
			} else {
				out[i] = p.GetOrParse(src.URI, src.Content, src.Version)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Debug("provider: parsed documents", "count", len(docs), "duration", time.Since(start))
	return out, nil
}

// Get returns a cached ParsedDocument without parsing.
// Returns nil if not cached.
func (p *Provider) Get(uri string) *ParsedDocument {
	p.documentsMu.RLock()
	defer p.documentsMu.RUnlock()
	return p.documents[uri]
}

// Invalidate removes a document from the cache.
func (p *Provider) Invalidate(uri string) {
	p.documentsMu.Lock()
	defer p.documentsMu.Unlock()
	delete(p.documents, uri)
}

// InvalidateAll clears the entire document cache.
func (p *Provider) InvalidateAll() {
	p.documentsMu.Lock()
	defer p.documentsMu.Unlock()
	p.documents = make(map[string]*ParsedDocument)
}

// Len returns the number of cached documents.
func (p *Provider) Len() int {
	p.documentsMu.RLock()
	defer p.documentsMu.RUnlock()
	return len(p.documents)
}
