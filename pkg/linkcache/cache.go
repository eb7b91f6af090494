// Package linkcache memoizes signed, time-limited object URLs so the
// feed doesn't hit the object store on every render.
package linkcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"giffeed/pkg/monitoring"
)

var ErrIssuer = errors.New("linkcache: signed URL issuance failed")

// Signer mints a URL for bucket/key valid for the given duration
// from the moment of the call.
type Signer interface {
	Sign(ctx context.Context, bucket, key string, validity time.Duration) (string, error)
}

type cachedLink struct {
	url      string
	issuedAt time.Time
}

// Cache holds signed URLs for one bucket. Entries count as usable only
// while now < issuedAt + validity - safetyBuffer; the buffer covers clock
// skew and the gap between rendering a link and the client following it.
type Cache struct {
	signer   Signer
	bucket   string
	validity time.Duration
	buffer   time.Duration

	mu    sync.RWMutex
	links map[string]cachedLink

	now func() time.Time
}

func New(signer Signer, bucket string, validity, safetyBuffer time.Duration) *Cache {
	return &Cache{
		signer:   signer,
		bucket:   bucket,
		validity: validity,
		buffer:   safetyBuffer,
		links:    map[string]cachedLink{},
		now:      time.Now,
	}
}

func (c *Cache) usable(l cachedLink) bool {
	return c.now().Before(l.issuedAt.Add(c.validity - c.buffer))
}

// Resolve returns a currently-valid signed URL for key, issuing a new
// one only when there is no usable cached link. On issuer failure the
// previous entry is left as is, so a later call can retry instead of
// hitting a cached failure.
func (c *Cache) Resolve(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	link, ok := c.links[key]
	c.mu.RUnlock()

	if ok && c.usable(link) {
		monitoring.SignedLinkCacheHits.WithLabelValues(c.bucket).Inc()
		return link.url, nil
	}

	// The signer call is blocking I/O; it must not run under the lock.
	// Two goroutines racing on the same stale key may both end up here
	// and issue twice; the second write simply wins.
	url, err := c.signer.Sign(ctx, c.bucket, key, c.validity)
	if err != nil {
		monitoring.SignedLinkFailures.WithLabelValues(c.bucket).Inc()
		return "", fmt.Errorf("%w: bucket %q key %q: %v", ErrIssuer, c.bucket, key, err)
	}
	monitoring.SignedLinksIssued.WithLabelValues(c.bucket).Inc()

	c.mu.Lock()
	c.links[key] = cachedLink{url: url, issuedAt: c.now()}
	c.mu.Unlock()

	return url, nil
}

// Sweep drops every link whose usable window has passed, so a cache
// seeing many distinct keys doesn't accumulate dead entries.
func (c *Cache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, link := range c.links {
		if !c.usable(link) {
			delete(c.links, key)
		}
	}
}
