/*
Package ports defines the interfaces between the Grunberg core and its adapters.

These interfaces decouple the engine and the persistence gateway from concrete
storage backends, quest sources and transports.

# Key Interfaces

  - SaveStore: durable key/value storage for serialized save envelopes.
  - DistributedLocker: distributed locking for stores shared between processes.
  - QuestCatalog: read-only source of quest definitions (e.g., Loam documents or memory).
  - GameSession: the driving port that transport adapters (HTTP, MCP) call into.
*/
package ports
