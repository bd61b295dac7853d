// Package grid composes the model, selection, edit session, router,
// clipboard bridge and persistence queue of one grid instance into a
// Controller.
//
// A Controller owns all of its state; two controllers never share selection,
// editor, clipboard staging or save queues. Every method must be called on the
// scheduler goroutine the controller was built with, and observers are
// notified synchronously on that goroutine. Rendering adapters subscribe to
// the observer bus and read state back through the controller's getters.
package grid
