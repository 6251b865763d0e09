package loadfile_test

import (
	"errors"
	"go.arcalot.io/assert"
	"go.flow.arcalot.io/subfactory/loadfile"
	"log"
	"os"
	"path/filepath"
	"testing"
)

// This tests LoadContext with a graph file, a symbolic link to it and
// a directory. Regular files and links to regular files are read, a
// directory or a link to a directory is an error.
func Test_LoadContext(t *testing.T) {
	testdir := filepath.Join(TestDir, "load-ctx")
	assert.NoError(t, os.MkdirAll(testdir, os.ModePerm))

	dirPath, err := os.MkdirTemp(testdir, "graphs*")
	assert.NoError(t, err)

	graphPath := filepath.Join(dirPath, "recipe.dot")
	graphContent := []byte(`digraph { gear -> plate }`)
	assert.NoError(t, os.WriteFile(graphPath, graphContent, 0600))

	symlinkDirname := dirPath + "_sym"
	assert.NoError(t, os.Symlink(dirPath, symlinkDirname))
	symlinkFilepath := graphPath + "_sym"
	assert.NoError(t, os.Symlink(graphPath, symlinkFilepath))

	fc, err := loadfile.NewFileCacheUsingContext(testdir, map[string]string{
		loadfile.KeyGraph:  graphPath,
		"link":             symlinkFilepath,
		loadfile.KeyConfig: "",
	})
	assert.NoError(t, err)
	assert.NoError(t, fc.LoadContext())
	assert.Equals(t, fc.Contents(), map[string][]byte{
		loadfile.KeyGraph: graphContent,
		"link":            graphContent,
	})
	assert.Equals(t, fc.ContentByKey(loadfile.KeyGraph), graphContent)
	assert.Equals(t, fc.ContentByKey(loadfile.KeyConfig) == nil, true)

	errFileRead := "reading file"
	for _, path := range []string{dirPath, symlinkDirname, filepath.Join(dirPath, "missing.dot")} {
		fc, err = loadfile.NewFileCacheUsingContext(testdir, map[string]string{loadfile.KeyGraph: path})
		assert.NoError(t, err)
		err = fc.LoadContext()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), errFileRead)
	}
}

// This tests that relative paths are joined with the context directory
// and absolute paths pass through unmodified.
func Test_NewFileCacheUsingContext(t *testing.T) {
	testdir, err := os.MkdirTemp(TestDir, "")
	assert.NoError(t, err)

	testFilepaths := map[string]string{
		loadfile.KeyGraph:  "recipe.dot",
		loadfile.KeyConfig: "/etc/subfactory/config.yaml",
		"recipes":          "rel/../data/recipes.yaml",
	}
	absPathsExp := map[string]string{
		loadfile.KeyGraph:  filepath.Join(testdir, "recipe.dot"),
		loadfile.KeyConfig: "/etc/subfactory/config.yaml",
		"recipes":          filepath.Join(testdir, "data/recipes.yaml"),
	}

	fc, err := loadfile.NewFileCacheUsingContext(testdir, testFilepaths)
	assert.NoError(t, err)
	assert.Equals(t, fc.RootDir(), testdir)
	assert.Equals(t, FileCacheAbsPaths(fc), absPathsExp)
	assert.Equals(t, assert.NoErrorR[string](t)(fc.AbsPathByKey(loadfile.KeyGraph)), absPathsExp[loadfile.KeyGraph])

	graphFile, ok := fc.GetByKey(loadfile.KeyGraph)
	assert.Equals(t, ok, true)
	assert.Equals(t, graphFile.ID, "recipe.dot")

	_, err = fc.AbsPathByKey("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file cache does not contain")
	var notInCache loadfile.ErrNotInCache
	assert.Equals(t, errors.As(err, &notInCache), true)
}

// This tests that merging combines file caches, with later caches
// overwriting keys of earlier ones.
func Test_MergeFileCaches(t *testing.T) {
	graph := []byte(`digraph { gear -> plate }`)
	replacedGraph := []byte(`digraph { circuit -> cable }`)
	config := []byte(`log: {level: debug}`)
	recipes := []byte(`- name: gear`)

	expRootDir := "ctx"
	fc1 := loadfile.NewFileCache(expRootDir, map[string][]byte{
		loadfile.KeyGraph:  graph,
		loadfile.KeyConfig: config,
	})
	fc2 := loadfile.NewFileCache(expRootDir, map[string][]byte{
		loadfile.KeyGraph: replacedGraph,
		"recipes":         recipes,
	})

	expMergedFiles := map[string]loadfile.ContextFile{
		loadfile.KeyGraph: {
			ID:           loadfile.KeyGraph,
			AbsolutePath: loadfile.KeyGraph,
			Content:      replacedGraph,
		},
		loadfile.KeyConfig: {
			ID:           loadfile.KeyConfig,
			AbsolutePath: loadfile.KeyConfig,
			Content:      config,
		},
		"recipes": {
			ID:           "recipes",
			AbsolutePath: "recipes",
			Content:      recipes,
		},
	}

	fcMerged, err := loadfile.MergeFileCaches(fc1, fc2)
	assert.NoError(t, err)
	assert.Equals(t, fcMerged.RootDir(), expRootDir)
	assert.Equals(t, fcMerged.Files(), expMergedFiles)

	fc3 := loadfile.NewFileCache("other", map[string][]byte{"d": nil})
	fcMerged2, err := loadfile.MergeFileCaches(fcMerged, fc3)
	assert.Error(t, err)
	assert.Nil(t, fcMerged2)

	// nil file caches should not be merged
	var fcNil loadfile.FileCache
	fcMerged3, err := loadfile.MergeFileCaches(fcMerged, fcNil, fcNil)
	assert.NoError(t, err)
	assert.Equals(t, fcMerged3.RootDir(), expRootDir)
	assert.Equals(t, fcMerged3.Files(), expMergedFiles)
}

func FileCacheAbsPaths(fc loadfile.FileCache) map[string]string {
	result := map[string]string{}
	for key, f := range fc.Files() {
		result[key] = f.AbsolutePath
	}
	return result
}

var TestDir = filepath.Join(os.TempDir(), "subfactory-loadfile-tests")

func TestMain(m *testing.M) {
	// cleanup directory even if it's there
	_ = os.RemoveAll(TestDir)
	err := os.MkdirAll(TestDir, os.ModePerm)
	if err != nil {
		log.Fatalf("failed to make directory %s %v", TestDir, err)
	}
	exitCode := m.Run()
	_ = os.RemoveAll(TestDir)
	os.Exit(exitCode)
}
