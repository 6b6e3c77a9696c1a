// Package auth provides local password authentication, server-side
// sessions and the session gate that protects the dashboard routes.
//
// The gate checks each request once against the session store and
// redirects browsers to /login when no session exists (API clients get a
// 401 instead). There is no mid-request re-check: session expiry is only
// noticed on the next request that passes through the gate.
package auth
