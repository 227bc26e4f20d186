/*
Package domain contains the shared types of the pathfinder library.

It is kept free of I/O so every other package (resolver, caches, adapters) can
depend on it without pulling in transports or storage.

# Key Entities

  - NodeTransformType: the kind of transform applied to a scene node.
  - Exception: the runtime error type returned by library operations.
  - LookupEvent: what the resolver reports after each file lookup.
  - LifecycleHooks: callbacks used to observe lookups and fingerprints.
*/
package domain
