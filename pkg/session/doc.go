/*
Package session serializes access to save slots.

Manager wraps any ports.SaveStore and guarantees that writes to one save key
never interleave, within a process (ref-counted per-key mutexes) and, when a
ports.DistributedLocker is configured, across processes sharing the backend.
A Manager is itself a ports.SaveStore, so it can be handed to the persistence
gateway in place of the raw store.
*/
package session
