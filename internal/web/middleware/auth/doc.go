// Package auth provides the admin gate for the web application.
//
// A request passes the gate when its session cookie resolves to a stored session and
// the session email is still on the admin allow-list. The allow-list is checked on
// every request, so removing an admin locks them out without waiting for the session
// to expire.
//
// Pages that fail the gate are redirected to the login page. API routes answer
// 401 with a JSON error body instead.
//
// Usage:
//
//	gate := authmiddleware.New(authmiddleware.Config{Sessions: m, Allowed: svc.IsAllowed})
//	app.Get("/admin", gate.Page(), dashboard)
//	api.Post("/publications", gate.API(), create)
package auth
