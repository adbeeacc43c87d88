package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; page state is then kept in memory.
	DefaultDatabaseURL = ""

	// DefaultSessionTTL is how long an idle visitor's controller stays cached.
	DefaultSessionTTL = 30 * time.Minute

	// SessionCookieName names the cookie carrying the visitor's session ID.
	SessionCookieName = "catpage_session"

	// SessionCookieMaxAge keeps the session cookie for a year.
	SessionCookieMaxAge = 365 * 24 * 60 * 60

	// DatabaseMaxConns and DatabaseMinConns size the pgx pool.
	DatabaseMaxConns = 10
	DatabaseMinConns = 2

	// DefaultServiceName is reported to the trace exporter.
	DefaultServiceName = "catpage"
)
