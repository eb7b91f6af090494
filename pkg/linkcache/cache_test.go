package linkcache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

const (
	testBucket   = "gifs"
	testValidity = 100 * time.Second
	testBuffer   = 15 * time.Second
)

// Pins the cache clock to a settable instant.
func frozenClock(c *Cache) func(time.Duration) {
	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestResolveExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockSigner := NewMockSigner(ctrl)
	cache := New(mockSigner, testBucket, testValidity, testBuffer)
	advance := frozenClock(cache)

	// t=0: miss, issues U1
	mockSigner.EXPECT().
		Sign(ctx, testBucket, "a.gif", testValidity).
		Return("https://s3/u1", nil)
	url, err := cache.Resolve(ctx, "a.gif")
	assert.Nil(t, err)
	assert.Equal(t, "https://s3/u1", url)

	// t=50: still inside the usable window, no issuer call
	advance(50 * time.Second)
	url, err = cache.Resolve(ctx, "a.gif")
	assert.Nil(t, err)
	assert.Equal(t, "https://s3/u1", url)

	// t=90: past validity-buffer = 85, reissues
	advance(40 * time.Second)
	mockSigner.EXPECT().
		Sign(ctx, testBucket, "a.gif", testValidity).
		Return("https://s3/u2", nil)
	url, err = cache.Resolve(ctx, "a.gif")
	assert.Nil(t, err)
	assert.Equal(t, "https://s3/u2", url)
}

func TestResolveBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockSigner := NewMockSigner(ctrl)
	cache := New(mockSigner, testBucket, testValidity, testBuffer)
	advance := frozenClock(cache)

	mockSigner.EXPECT().
		Sign(ctx, testBucket, "b.gif", testValidity).
		Return("https://s3/u1", nil)
	_, err := cache.Resolve(ctx, "b.gif")
	assert.Nil(t, err)

	// t=85 is exactly validity-buffer: no longer usable
	advance(85 * time.Second)
	mockSigner.EXPECT().
		Sign(ctx, testBucket, "b.gif", testValidity).
		Return("https://s3/u2", nil)
	url, err := cache.Resolve(ctx, "b.gif")
	assert.Nil(t, err)
	assert.Equal(t, "https://s3/u2", url)
}

func TestResolveNoPoisonOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockSigner := NewMockSigner(ctrl)
	cache := New(mockSigner, testBucket, testValidity, testBuffer)
	advance := frozenClock(cache)

	mockSigner.EXPECT().
		Sign(ctx, testBucket, "a.gif", testValidity).
		Return("https://s3/u1", nil)
	_, err := cache.Resolve(ctx, "a.gif")
	assert.Nil(t, err)

	advance(90 * time.Second)

	t.Run("issuer failure propagates and leaves the old entry", func(t *testing.T) {
		mockSigner.EXPECT().
			Sign(ctx, testBucket, "a.gif", testValidity).
			Return("", fmt.Errorf("rate limited"))
		_, err := cache.Resolve(ctx, "a.gif")
		assert.ErrorIs(t, err, ErrIssuer)

		cache.mu.RLock()
		link, ok := cache.links["a.gif"]
		cache.mu.RUnlock()
		assert.True(t, ok)
		assert.Equal(t, "https://s3/u1", link.url)
	})

	t.Run("a later call can still refresh", func(t *testing.T) {
		mockSigner.EXPECT().
			Sign(ctx, testBucket, "a.gif", testValidity).
			Return("https://s3/u2", nil)
		url, err := cache.Resolve(ctx, "a.gif")
		assert.Nil(t, err)
		assert.Equal(t, "https://s3/u2", url)
	})
}

func TestSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockSigner := NewMockSigner(ctrl)
	cache := New(mockSigner, testBucket, testValidity, testBuffer)
	advance := frozenClock(cache)

	mockSigner.EXPECT().
		Sign(ctx, testBucket, gomock.Any(), testValidity).
		Return("https://s3/old", nil).
		Times(2)
	for _, key := range []string{"old1.gif", "old2.gif"} {
		_, err := cache.Resolve(ctx, key)
		assert.Nil(t, err)
	}

	advance(60 * time.Second)
	mockSigner.EXPECT().
		Sign(ctx, testBucket, "fresh.gif", testValidity).
		Return("https://s3/fresh", nil)
	_, err := cache.Resolve(ctx, "fresh.gif")
	assert.Nil(t, err)

	// t=90: the first two are past their usable window, fresh.gif is not
	advance(30 * time.Second)
	cache.Sweep()

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	assert.Len(t, cache.links, 1)
	_, ok := cache.links["fresh.gif"]
	assert.True(t, ok)
}

func TestConcurrentResolveAndSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSigner := NewMockSigner(ctrl)
	mockSigner.EXPECT().
		Sign(gomock.Any(), testBucket, gomock.Any(), testValidity).
		DoAndReturn(func(_ context.Context, _, key string, _ time.Duration) (string, error) {
			return "https://s3/" + key, nil
		}).
		AnyTimes()

	cache := New(mockSigner, testBucket, testValidity, testBuffer)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d.gif", i%4)
			for j := 0; j < 50; j++ {
				url, err := cache.Resolve(context.Background(), key)
				assert.Nil(t, err)
				assert.Equal(t, "https://s3/"+key, url)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			cache.Sweep()
		}
	}()
	wg.Wait()
}
