package application

import "expvar"

// Counters are published at /api/debug/vars.
var (
	authEvents    = expvar.NewMap("auth_events")
	contentEvents = expvar.NewMap("content_events")
)

func countAuth(event string)    { authEvents.Add(event, 1) }
func countContent(event string) { contentEvents.Add(event, 1) }
