// Package container provides a keyed entry registry with delegate lookup.
//
// A Registry resolves entries it holds itself first. On a local miss it asks
// its delegates, in the order they were added, and returns the entry of the
// first delegate that reports having the key:
//
//	app := container.NewRegistry()
//	app.Set("greeting", "hello")
//
//	plugins := container.NewRegistry()
//	plugins.Singleton("mailer", func(r *container.Registry) (any, error) {
//	    return newMailer()
//	})
//
//	app.AddDelegate(plugins)
//	m, err := app.Get("mailer") // produced by plugins
//
// Any type with Has and Get can act as a delegate, and DelegateSet can be
// embedded in other containers to give them the same fallback behavior.
//
// # Errors
//
// A key that is unknown locally and to every delegate yields *NotFoundError
// (errors.Is(err, ErrNotFound)). A failure while producing an entry, either
// by a local factory or by a delegate, yields *ResolutionError carrying the
// key and the original cause.
package container
