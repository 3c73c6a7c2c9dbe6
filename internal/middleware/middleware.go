// Package middleware holds the HTTP wrappers shared by every route.
package middleware

import (
	"net/http"
	"slices"
)

type Middleware func(http.Handler) http.Handler

// Wrap applies mws so that the first listed is the outermost, the order a
// request travels through them.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range slices.Backward(mws) {
		h = mw(h)
	}
	return h
}
