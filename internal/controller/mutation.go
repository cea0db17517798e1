package controller

import (
	"context"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// beginSubmit moves the mutation state from idle to submitting. It fails
// when another mutation is already in flight.
func (c *Controller[T, F]) beginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.NewAppError(domain.CodeInternal, "controller is closed", nil)
	}
	if c.submitting {
		return ErrSubmitting
	}
	c.submitting = true
	return nil
}

func (c *Controller[T, F]) endSubmit() {
	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()
	c.notifyChange()
}

// Create submits a new record. On success the list restarts from page 1 so
// the user sees the fresh state; on failure the current rows stay on screen
// and only a notification is raised.
func (c *Controller[T, F]) Create(ctx context.Context, form F) error {
	if err := c.beginSubmit(); err != nil {
		return err
	}
	c.notifyChange()
	defer c.endSubmit()

	msg, err := c.src.Create(ctx, form)
	if err != nil {
		c.notifier.Show(domain.NotifyError, c.failureText(err, c.msgs.CreateFailed))
		return err
	}

	c.notifier.Show(domain.NotifySuccess, orDefault(msg, c.msgs.CreateOK))
	c.mu.Lock()
	c.query.Page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
	return nil
}

// Update submits changes to an existing record. The current page is kept so
// the edited row stays in view after the refetch.
func (c *Controller[T, F]) Update(ctx context.Context, id int, form F) error {
	if err := c.beginSubmit(); err != nil {
		return err
	}
	c.notifyChange()
	defer c.endSubmit()

	msg, err := c.src.Update(ctx, id, form)
	if err != nil {
		c.notifier.Show(domain.NotifyError, c.failureText(err, c.msgs.UpdateFailed))
		return err
	}

	c.notifier.Show(domain.NotifySuccess, orDefault(msg, c.msgs.UpdateOK))
	c.Refresh(ctx)
	return nil
}

// ArmDelete marks a row for deletion. Nothing is sent to the backend until
// ConfirmDelete; DisarmDelete cancels the request.
func (c *Controller[T, F]) ArmDelete(id int) {
	c.mu.Lock()
	if !c.closed {
		c.pendingDel = id
	}
	c.mu.Unlock()
	c.notifyChange()
}

// DisarmDelete cancels a pending deletion without touching the backend.
func (c *Controller[T, F]) DisarmDelete() {
	c.mu.Lock()
	c.pendingDel = 0
	c.mu.Unlock()
	c.notifyChange()
}

// ConfirmDelete deletes the armed row. The armed id is cleared whether the
// call succeeds or not, so a retry requires arming again. On success any
// open detail overlay closes and the current page is refetched.
func (c *Controller[T, F]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id := c.pendingDel
	c.mu.Unlock()
	if id == 0 {
		return ErrNoPendingDelete
	}

	if err := c.beginSubmit(); err != nil {
		return err
	}
	c.notifyChange()
	defer c.endSubmit()

	msg, err := c.src.Delete(ctx, id)

	c.mu.Lock()
	c.pendingDel = 0
	c.mu.Unlock()

	if err != nil {
		c.notifier.Show(domain.NotifyError, c.failureText(err, c.msgs.DeleteFailed))
		return err
	}

	c.notifier.Show(domain.NotifySuccess, orDefault(msg, c.msgs.DeleteOK))
	c.CloseDetail()
	c.Refresh(ctx)
	return nil
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
