/*
Package pathfinder resolves files across configurable search paths and
provides the small cross-platform helpers that go with it: SHA1 digests,
wall-clock time in ISO form and content fingerprints.

# Concept

A search path is a directory consulted when a file name is not absolute.
Suffixes extend every search path with a sub-directory, so adding the suffix
"meshes" lets "box.dae" be found in "<path>/meshes/box.dae". Paths come from
the PATHFINDER_FILE_PATH environment variable and from explicit calls.

# Usage

The package-level functions share one process-wide resolver:

	pathfinder.AddSearchPathSuffix("meshes")
	p, err := pathfinder.FindFile("box.dae")
	if errors.Is(err, domain.ErrFileNotFound) {
		// not in the working directory, the search paths, or their suffixes
	}

For isolated configuration build a Finder:

	cfg, err := config.Load("pathfinder.yaml")
	if err != nil {
		log.Fatal(err)
	}
	f, err := pathfinder.NewFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	fp, err := f.Fingerprint(ctx, "models/box/model.sdf")

# Packages

  - pkg/paths: the search-path resolver.
  - pkg/digest: SHA1 helpers.
  - pkg/clock: time constants, sleeps and ISO timestamps.
  - pkg/fingerprint: cached content digests of resolved files.
  - pkg/adapters: memory and Redis caches, HTTP and MCP servers.
*/
package pathfinder
