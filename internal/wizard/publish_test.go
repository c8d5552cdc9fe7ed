package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Blue Fern", "https://blue-fern.aemam.com"},
		{"studio", "https://studio.aemam.com"},
		{"", "https://my-site.aemam.com"},
		{"   ", "https://my-site.aemam.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SiteURL(tt.name), "name %q", tt.name)
	}
}

func TestPublisherReportsOnce(t *testing.T) {
	t.Parallel()

	p := NewPublisher(testDelay)
	got := make(chan Publication, 1)
	require.NoError(t, p.PublishAsync(context.Background(), "Blue Fern", func(pub Publication) { got <- pub }))
	assert.True(t, p.Publishing())
	assert.ErrorIs(t, p.PublishAsync(context.Background(), "Other", nil), ErrBusy)

	select {
	case pub := <-got:
		assert.Equal(t, "https://blue-fern.aemam.com", pub.URL)
		assert.False(t, pub.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("publish never finished")
	}
	assert.False(t, p.Publishing())

	require.NoError(t, p.PublishAsync(context.Background(), "Again", nil))
}

func TestPublisherCancelled(t *testing.T) {
	t.Parallel()

	p := NewPublisher(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	called := make(chan struct{}, 1)
	require.NoError(t, p.PublishAsync(ctx, "x", func(Publication) { called <- struct{}{} }))

	cancel()
	assert.Eventually(t, func() bool { return !p.Publishing() }, time.Second, 5*time.Millisecond)
	select {
	case <-called:
		t.Fatal("done called after cancel")
	case <-time.After(2 * testDelay):
	}
}
