package s3

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/repokit/internal/util/retry"
)

// fakePutter records uploads and fails keys listed in failures.
type fakePutter struct {
	mu       sync.Mutex
	objects  map[string][]byte
	attempts map[string]int
	failures map[string][]error
}

func newFakePutter() *fakePutter {
	return &fakePutter{
		objects:  make(map[string][]byte),
		attempts: make(map[string]int),
		failures: make(map[string][]error),
	}
}

func (f *fakePutter) PutObject(_ context.Context, bucket, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[key]++
	if errs := f.failures[key]; len(errs) > 0 {
		f.failures[key] = errs[1:]
		return errs[0]
	}
	f.objects[bucket+"/"+key] = data
	return nil
}

func fastRetry() PublisherOption {
	return WithRetryOptions(retry.WithInitialDelay(time.Millisecond), retry.WithMaxRetries(2))
}

func TestObjectKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a.json", ObjectKey("", "a.json"))
	assert.Equal(t, "templates/a.json", ObjectKey("templates/", "a.json"))
	assert.Equal(t, "x/y/a.json", ObjectKey("/x/y/", "a.json"))
}

func TestPublish(t *testing.T) {
	t.Parallel()
	putter := newFakePutter()
	p := NewPublisher(putter, "bucket", "templates", WithConcurrency(2), fastRetry())

	uris, err := p.Publish(context.Background(), []Artifact{
		{Name: "app-core.template.json", Data: []byte("{}"), ContentType: ContentTypeJSON},
		{Name: "buildspec.yml", Data: []byte("version: 0.2"), ContentType: ContentTypeYAML},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"s3://bucket/templates/app-core.template.json",
		"s3://bucket/templates/buildspec.yml",
	}, uris)
	assert.Equal(t, []byte("{}"), putter.objects["bucket/templates/app-core.template.json"])
}

func TestPublish_RetriesTransientErrors(t *testing.T) {
	t.Parallel()
	putter := newFakePutter()
	putter.failures["a"] = []error{&smithy.GenericAPIError{Code: "SlowDown", Fault: smithy.FaultClient}}
	p := NewPublisher(putter, "bucket", "", fastRetry())

	_, err := p.Publish(context.Background(), []Artifact{{Name: "a", Data: []byte("x")}})

	require.NoError(t, err)
	assert.Equal(t, 2, putter.attempts["a"])
}

func TestPublish_PermanentErrorNotRetried(t *testing.T) {
	t.Parallel()
	denied := &smithy.GenericAPIError{Code: "AccessDenied", Fault: smithy.FaultClient}
	putter := newFakePutter()
	putter.failures["a"] = []error{denied, denied, denied}
	p := NewPublisher(putter, "bucket", "", fastRetry())

	uris, err := p.Publish(context.Background(), []Artifact{{Name: "a", Data: []byte("x")}})

	require.Error(t, err)
	assert.Nil(t, uris)
	assert.Equal(t, 1, putter.attempts["a"])
	var apiErr smithy.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "non-retryable error")
}

func TestPublish_OnRetry(t *testing.T) {
	t.Parallel()
	slowDown := &smithy.GenericAPIError{Code: "SlowDown", Fault: smithy.FaultServer}
	putter := newFakePutter()
	putter.failures["a"] = []error{slowDown, slowDown}

	var mu sync.Mutex
	var attempts []int
	p := NewPublisher(putter, "bucket", "", fastRetry(), WithRetryOptions(
		retry.WithOnRetry(func(attempt int, err error) {
			mu.Lock()
			defer mu.Unlock()
			attempts = append(attempts, attempt)
			assert.ErrorIs(t, err, slowDown)
		}),
	))

	_, err := p.Publish(context.Background(), []Artifact{{Name: "a", Data: []byte("x")}})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, attempts)
	assert.Equal(t, 3, putter.attempts["a"])
}

func TestPublish_NoBucket(t *testing.T) {
	t.Parallel()
	_, err := NewPublisher(newFakePutter(), "", "").Publish(context.Background(), nil)
	assert.Error(t, err)
}
