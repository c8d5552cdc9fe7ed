package wizard

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-slug"
)

// Publishing defaults.
const (
	DefaultPublishDelay = 2 * time.Second
	SiteDomain          = "aemam.com"
	fallbackSlug        = "my-site"
)

// SiteSlug returns the subdomain label for a site name.
func SiteSlug(name string) string {
	s, err := slug.Normalize(name)
	if err != nil || s == "" {
		return fallbackSlug
	}
	return s
}

// SiteURL returns the public address a site would be published at.
func SiteURL(name string) string {
	return "https://" + SiteSlug(name) + "." + SiteDomain
}

// Publication is the result of a publish run.
type Publication struct {
	URL string
	At  time.Time
}

// Publisher simulates publishing: nothing is uploaded, the result is
// reported after a fixed delay.
type Publisher struct {
	delay   time.Duration
	running atomic.Bool
}

// NewPublisher creates a publisher with the given delay.
func NewPublisher(delay time.Duration) *Publisher {
	if delay < 0 {
		delay = 0
	}
	return &Publisher{delay: delay}
}

// Publishing reports whether a run is in progress.
func (p *Publisher) Publishing() bool {
	return p.running.Load()
}

// PublishAsync starts a run for name and calls done when it completes. A
// cancelled ctx ends the run without calling done.
func (p *Publisher) PublishAsync(ctx context.Context, name string, done func(Publication)) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrBusy
	}
	url := SiteURL(name)
	go func() {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			p.running.Store(false)
		case <-ctx.Done():
			p.running.Store(false)
			return
		}
		if done != nil {
			done(Publication{URL: url, At: time.Now()})
		}
	}()
	return nil
}
