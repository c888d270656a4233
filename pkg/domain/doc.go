/*
Package domain contains the core game model of the Grunberg engine.

It defines the session aggregate and everything inside it, the closed set of
actions that can change it, and the events those changes announce. This
package is kept pure and free of I/O: persistence, the event bus and the
transition engine live elsewhere and depend on it.

# Key Entities

  - GameState: the whole session (character, status, position, inventory, quests, flags, metadata).
  - Action: one of the sixteen named state changes. Built in Go or decoded from a wire payload.
  - Event: an announcement of a change, published on the bus after the state is committed.
  - ErrorKind: the failure categories of the persistence boundary.
*/
package domain
