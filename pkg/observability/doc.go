/*
Package observability exposes Prometheus metrics for a running game.

Metrics counts dispatched actions by type, bus events by kind and persistence
operations by outcome, and times save/load calls. It implements events.Listener,
so it can be registered on the bus for every event kind.
*/
package observability
