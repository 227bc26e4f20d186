/*
Package paths resolves file names against an ordered set of search locations.

A SystemPaths value combines directories read from an environment variable
(PATHFINDER_FILE_PATH by default) with directories added at runtime. Every
search directory may be extended by suffixes: with the search path
"/opt/models" and the suffix "meshes", a lookup of "box.dae" tries
"/opt/models/box.dae" and then "/opt/models/meshes/box.dae".

# Lookup Order

  - An absolute name is returned as is when it exists.
  - The working directory, when local search is requested.
  - Each search path, followed by each of its suffixed variants.
  - Registered find-file callbacks, in registration order.

Names prefixed with "file://" have the prefix stripped first. Other URI
schemes are delegated to URI callbacks by FindFileURI.
*/
package paths
