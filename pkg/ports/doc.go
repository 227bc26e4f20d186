/*
Package ports defines the driven ports (interfaces) of pathfinder.

These interfaces decouple fingerprinting from storage so digests can be
cached in process memory or in a shared Redis instance.

# Key Interfaces

  - DigestCache: stores file fingerprints keyed by resolved path.
*/
package ports
