package meteireann

import (
	"log"
	"net/http"
	"time"
)

// Session is the HTTP session shared by the forecast and warning
// providers. A session only releases an http.Client it created itself.
type Session struct {
	client     *http.Client
	ownsClient bool
	backoff    BackoffConfig
}

// NewSession wraps client. When client is nil the session creates its own
// with the given timeout and takes ownership of it.
func NewSession(client *http.Client, timeout time.Duration) *Session {
	if client != nil {
		return &Session{client: client, backoff: defaultBackoff}
	}
	return &Session{
		client:     &http.Client{Timeout: timeout},
		ownsClient: true,
		backoff:    defaultBackoff,
	}
}

// WithBackoff overrides the retry policy.
func (s *Session) WithBackoff(b BackoffConfig) *Session {
	s.backoff = b
	return s
}

// OwnsClient reports whether Close releases the underlying client.
func (s *Session) OwnsClient() bool {
	return s.ownsClient
}

// Close releases idle connections of a session-created client. An external
// client is left untouched.
func (s *Session) Close() {
	if !s.ownsClient {
		log.Printf("WARNING: cannot close an external session")
		return
	}
	s.client.CloseIdleConnections()
	log.Printf("DEBUG: closed session")
}
