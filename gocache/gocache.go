// Package gocache caches collaborator results in memory with a TTL.
package gocache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/marketway"
	"github.com/patrickmn/go-cache"
)

// Cache defaults.
const (
	DefaultTTL             = 1 * time.Hour
	DefaultCleanupInterval = 10 * time.Minute
)

// Ensure CachingAnswerer implements marketway.Answerer.
var _ marketway.Answerer = (*CachingAnswerer)(nil)

// CachingAnswerer remembers fallback answers per question. Questions that
// differ only in case or spacing share an entry. Errors are not cached.
type CachingAnswerer struct {
	next  marketway.Answerer
	cache *cache.Cache
}

// NewCachingAnswerer wraps next with a cache whose entries expire after ttl.
func NewCachingAnswerer(next marketway.Answerer, ttl time.Duration) *CachingAnswerer {
	return &CachingAnswerer{next: next, cache: cache.New(ttl, DefaultCleanupInterval)}
}

func (a *CachingAnswerer) Answer(ctx context.Context, question string) (string, error) {
	key := questionKey(question)
	if x, found := a.cache.Get(key); found {
		return x.(string), nil
	}

	text, err := a.next.Answer(ctx, question)
	if err != nil {
		return "", err
	}
	a.cache.Set(key, text, cache.DefaultExpiration)
	return text, nil
}

// Len returns the number of entries, including expired ones not yet purged.
func (a *CachingAnswerer) Len() int {
	return a.cache.ItemCount()
}

// Ensure CachingClassifier implements marketway.Classifier.
var _ marketway.Classifier = (*CachingClassifier)(nil)

// CachingClassifier remembers classifications per image content.
type CachingClassifier struct {
	next  marketway.Classifier
	cache *cache.Cache
}

// NewCachingClassifier wraps next with a cache whose entries expire after ttl.
func NewCachingClassifier(next marketway.Classifier, ttl time.Duration) *CachingClassifier {
	return &CachingClassifier{next: next, cache: cache.New(ttl, DefaultCleanupInterval)}
}

func (c *CachingClassifier) Classify(ctx context.Context, image []byte) (*marketway.Classification, error) {
	key := imageKey(image)
	if x, found := c.cache.Get(key); found {
		res := *x.(*marketway.Classification)
		return &res, nil
	}

	res, err := c.next.Classify(ctx, image)
	if err != nil {
		return nil, err
	}
	stored := *res
	c.cache.Set(key, &stored, cache.DefaultExpiration)
	return res, nil
}

// Len returns the number of entries, including expired ones not yet purged.
func (c *CachingClassifier) Len() int {
	return c.cache.ItemCount()
}

// WrapAnswerer caches next for ttl. A non-positive ttl disables caching and
// returns next unchanged, since go-cache would otherwise keep entries forever.
func WrapAnswerer(next marketway.Answerer, ttl time.Duration) marketway.Answerer {
	if ttl <= 0 {
		return next
	}
	return NewCachingAnswerer(next, ttl)
}

// WrapClassifier caches next for ttl. A non-positive ttl disables caching and
// returns next unchanged.
func WrapClassifier(next marketway.Classifier, ttl time.Duration) marketway.Classifier {
	if ttl <= 0 {
		return next
	}
	return NewCachingClassifier(next, ttl)
}

func questionKey(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

func imageKey(image []byte) string {
	return strconv.FormatUint(xxhash.Sum64(image), 16) + ":" + strconv.Itoa(len(image))
}
