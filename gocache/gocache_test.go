package gocache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/gocache"
	"github.com/fwojciec/marketway/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingAnswerer(t *testing.T) {
	t.Parallel()

	t.Run("answers repeated question from cache", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Answerer{
			AnswerFn: func(ctx context.Context, question string) (string, error) {
				calls++
				return "Rice is sold by the bag.", nil
			},
		}
		answerer := gocache.NewCachingAnswerer(inner, time.Minute)

		first, err := answerer.Answer(context.Background(), "Where is rice?")
		require.NoError(t, err)
		second, err := answerer.Answer(context.Background(), "  where   is RICE? ")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, answerer.Len())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Answerer{
			AnswerFn: func(ctx context.Context, question string) (string, error) {
				calls++
				if calls == 1 {
					return "", marketway.Errorf(marketway.EUNAVAILABLE, "fallback down")
				}
				return "ok", nil
			},
		}
		answerer := gocache.NewCachingAnswerer(inner, time.Minute)

		_, err := answerer.Answer(context.Background(), "rice")
		require.Error(t, err)
		assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))

		text, err := answerer.Answer(context.Background(), "rice")
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
		assert.Equal(t, 2, calls)
	})

	t.Run("expires entries after ttl", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Answerer{
			AnswerFn: func(ctx context.Context, question string) (string, error) {
				calls++
				return "ok", nil
			},
		}
		answerer := gocache.NewCachingAnswerer(inner, 10*time.Millisecond)

		_, err := answerer.Answer(context.Background(), "rice")
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
		_, err = answerer.Answer(context.Background(), "rice")
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
	})
}

func TestCachingClassifier(t *testing.T) {
	t.Parallel()

	t.Run("classifies identical image once", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Classifier{
			ClassifyFn: func(ctx context.Context, image []byte) (*marketway.Classification, error) {
				calls++
				return &marketway.Classification{Label: "running_shoe", Confidence: 0.8}, nil
			},
		}
		classifier := gocache.NewCachingClassifier(inner, time.Minute)

		first, err := classifier.Classify(context.Background(), []byte("jpeg-1"))
		require.NoError(t, err)
		first.Label = "mutated"

		second, err := classifier.Classify(context.Background(), []byte("jpeg-1"))
		require.NoError(t, err)

		assert.Equal(t, "running_shoe", second.Label, "callers must not mutate cached value")
		assert.Equal(t, 1, calls)
	})

	t.Run("different images miss the cache", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Classifier{
			ClassifyFn: func(ctx context.Context, image []byte) (*marketway.Classification, error) {
				calls++
				return &marketway.Classification{Label: string(image)}, nil
			},
		}
		classifier := gocache.NewCachingClassifier(inner, time.Minute)

		a, err := classifier.Classify(context.Background(), []byte("a"))
		require.NoError(t, err)
		b, err := classifier.Classify(context.Background(), []byte("b"))
		require.NoError(t, err)

		assert.Equal(t, "a", a.Label)
		assert.Equal(t, "b", b.Label)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 2, classifier.Len())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Classifier{
			ClassifyFn: func(ctx context.Context, image []byte) (*marketway.Classification, error) {
				return nil, errors.New("model offline")
			},
		}
		classifier := gocache.NewCachingClassifier(inner, time.Minute)

		_, err := classifier.Classify(context.Background(), []byte("a"))

		require.Error(t, err)
		assert.Equal(t, 0, classifier.Len())
	})
}

func TestWrapClassifier(t *testing.T) {
	t.Parallel()

	newInner := func(calls *int) *mock.Classifier {
		return &mock.Classifier{
			ClassifyFn: func(ctx context.Context, image []byte) (*marketway.Classification, error) {
				*calls++
				return &marketway.Classification{Label: "sandal", Confidence: 0.9}, nil
			},
		}
	}

	t.Run("zero ttl disables caching", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := newInner(&calls)
		classifier := gocache.WrapClassifier(inner, 0)

		assert.Same(t, inner, classifier)
		for range 2 {
			_, err := classifier.Classify(context.Background(), []byte("photo"))
			require.NoError(t, err)
		}
		assert.Equal(t, 2, calls)
	})

	t.Run("positive ttl caches by image content", func(t *testing.T) {
		t.Parallel()

		calls := 0
		classifier := gocache.WrapClassifier(newInner(&calls), time.Minute)

		require.IsType(t, &gocache.CachingClassifier{}, classifier)
		for range 2 {
			_, err := classifier.Classify(context.Background(), []byte("photo"))
			require.NoError(t, err)
		}
		assert.Equal(t, 1, calls)
	})
}

func TestWrapAnswerer(t *testing.T) {
	t.Parallel()

	inner := &mock.Answerer{
		AnswerFn: func(ctx context.Context, question string) (string, error) { return "ok", nil },
	}

	assert.Same(t, inner, gocache.WrapAnswerer(inner, -time.Second))
	assert.IsType(t, &gocache.CachingAnswerer{}, gocache.WrapAnswerer(inner, time.Minute))
}
