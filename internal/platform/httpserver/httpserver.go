package httpserver

import (
	"net/http"
	"time"
)

// writeMargin is added to the resolution timeout so a timed-out call can still write its 504.
const writeMargin = 2 * time.Second

// New builds the HTTP server. resolveTimeout is the per-call resolution bound; responses get
// a little longer than that to be written.
func New(addr string, handler http.Handler, resolveTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      resolveTimeout + writeMargin,
		IdleTimeout:       60 * time.Second,
	}
}
