package pathfinder_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pathfinder"
	"github.com/aretw0/pathfinder/internal/logging"
	"github.com/aretw0/pathfinder/pkg/adapters/memory"
	"github.com/aretw0/pathfinder/pkg/config"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, elem ...string) string {
	t.Helper()
	p := filepath.Join(elem...)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("abc"), 0o600))
	return p
}

func TestPackageLevel_FindFile(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "urdf", "robot.urdf")
	t.Setenv(paths.DefaultFilePathEnv, dir)
	t.Chdir(t.TempDir())

	pathfinder.AddSearchPathSuffix("urdf")
	assert.Contains(t, pathfinder.SystemPaths().SearchPathSuffixes(), "urdf")

	p, err := pathfinder.FindFile("robot.urdf")
	require.NoError(t, err)
	assert.Equal(t, want, p)

	p, err = pathfinder.SearchFile("robot.urdf", false)
	require.NoError(t, err)
	assert.Equal(t, want, p)

	p, err = pathfinder.FindFileLocal("robot.urdf", false)
	require.NoError(t, err)
	assert.Equal(t, want, p)

	p, err = pathfinder.FindFilePath("robot.urdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "urdf"), p)

	_, err = pathfinder.FindFile("absent.urdf")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestPackageLevel_Helpers(t *testing.T) {
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", pathfinder.SHA1(""))
	assert.Len(t, pathfinder.SystemTimeISO(), len("2006-01-02T15:04:05.000000000"))
	assert.NotEmpty(t, pathfinder.Version)
	assert.Same(t, pathfinder.Default(), pathfinder.Default())
}

func TestFinder_Fingerprint(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "meshes", "box.dae")

	cache := memory.NewCache()
	f, err := pathfinder.New(
		pathfinder.WithLogger(logging.NewNop()),
		pathfinder.WithCache(cache),
		pathfinder.WithPathOptions(
			paths.WithFilePathEnv(""),
			paths.WithFilePaths(dir),
			paths.WithSuffixes("meshes"),
		),
	)
	require.NoError(t, err)
	defer f.Close()

	ctx := context.Background()
	fp, err := f.Fingerprint(ctx, "box.dae")
	require.NoError(t, err)
	assert.Equal(t, target, fp.Path)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", fp.Digest)

	list, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{target}, list)

	p, err := f.FindPath(ctx, "box.dae")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "meshes"), p)
}

func TestFinder_Hooks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "world.sdf")

	var lookups, prints int
	hooks := domain.LifecycleHooks{
		OnLookup:      func(context.Context, *domain.LookupEvent) { lookups++ },
		OnFingerprint: func(context.Context, *domain.FingerprintEvent) { prints++ },
	}
	f, err := pathfinder.New(
		pathfinder.WithLogger(logging.NewNop()),
		pathfinder.WithLifecycleHooks(hooks),
		pathfinder.WithPathOptions(paths.WithFilePathEnv(""), paths.WithWorkingDir(dir)),
	)
	require.NoError(t, err)
	defer f.Close()

	ctx := context.Background()
	_, err = f.Find(ctx, "world.sdf", true)
	require.NoError(t, err)
	_, err = f.Fingerprint(ctx, "world.sdf")
	require.NoError(t, err)

	assert.Equal(t, 2, lookups)
	assert.Equal(t, 1, prints)
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "materials", "wood.png")

	cfg := config.Default()
	cfg.LogLevel = "error"
	cfg.FilePathEnv = ""
	cfg.FilePaths = []string{dir}
	cfg.Suffixes = []string{"materials"}
	cfg.Cache.Backend = config.CacheNone
	cfg.Watch = true

	f, err := pathfinder.NewFromConfig(cfg)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{dir}, f.FilePaths())
	assert.Equal(t, []string{"materials"}, f.SearchPathSuffixes())

	fp, err := f.Fingerprint(context.Background(), "wood.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "materials", "wood.png"), fp.Path)

	f.AddFilePaths(t.TempDir())
	f.AddSearchPathSuffix("textures")
	assert.Len(t, f.FilePaths(), 2)
	assert.Equal(t, []string{"materials", "textures"}, f.SearchPathSuffixes())
}

func TestNewFromConfig_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	dir := t.TempDir()
	writeFile(t, dir, "box.sdf")

	cfg := config.Default()
	cfg.FilePathEnv = ""
	cfg.FilePaths = []string{dir}
	cfg.Cache.Backend = config.CacheRedis
	cfg.Cache.Redis.Addr = mr.Addr()

	f, err := pathfinder.NewFromConfig(cfg, pathfinder.WithLogger(logging.NewNop()))
	require.NoError(t, err)

	_, err = f.Fingerprint(context.Background(), "box.sdf")
	require.NoError(t, err)
	assert.True(t, mr.Exists("pathfinder:digest:"+filepath.Join(dir, "box.sdf")))
	assert.NoError(t, f.Close())
}

func TestNewFromConfig_Invalid(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "etcd"
	_, err := pathfinder.NewFromConfig(cfg)
	assert.Error(t, err)
}

func TestFinder_FindURI(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "box", "model.sdf")

	f, err := pathfinder.New(pathfinder.WithLogger(logging.NewNop()), pathfinder.WithCache(nil))
	require.NoError(t, err)
	defer f.Close()

	f.Paths().AddFindFileURICallback(func(uri string) string {
		if uri == "model://box" {
			return filepath.Join(dir, "box", "model.sdf")
		}
		return ""
	})

	p, err := f.FindURI(context.Background(), "model://box")
	require.NoError(t, err)
	assert.Equal(t, want, p)
}
