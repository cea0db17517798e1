package controller

import (
	"context"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// OpenDetail shows the detail overlay and loads the full record. The overlay
// opens immediately in a loading state; when the fetch fails the overlay
// closes again and an error notification is raised, so a stale record is
// never shown.
func (c *Controller[T, F]) OpenDetail(ctx context.Context, id int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.detailSeq++
	seq := c.detailSeq
	c.detail = DetailState[T]{Open: true, Loading: true}
	c.mu.Unlock()
	c.notifyChange()

	rec, err := c.src.Get(ctx, id)

	c.mu.Lock()
	if c.closed || seq != c.detailSeq {
		// A newer OpenDetail or CloseDetail took over the overlay.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.detail = DetailState[T]{}
		c.mu.Unlock()
		c.notifier.Show(domain.NotifyError, c.failureText(err, c.msgs.DetailFailed))
		c.notifyChange()
		return err
	}
	c.detail = DetailState[T]{Open: true, Record: rec}
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

// CloseDetail dismisses the overlay. An in-flight detail fetch is discarded
// when it lands.
func (c *Controller[T, F]) CloseDetail() {
	c.mu.Lock()
	c.detailSeq++
	c.detail = DetailState[T]{}
	c.mu.Unlock()
	c.notifyChange()
}
