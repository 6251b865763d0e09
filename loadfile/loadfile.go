// Package loadfile loads the graph and configuration files named on the command line, resolving relative paths
// against a context directory.
package loadfile

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// KeyGraph is the file key of the dependency graph file.
	KeyGraph = "graph"
	// KeyConfig is the file key of the engine configuration file.
	KeyConfig = "config"
)

// ErrNotInCache is returned when a file key is looked up that the cache does not hold.
type ErrNotInCache struct {
	Key string
}

func (e ErrNotInCache) Error() string {
	return fmt.Sprintf("file cache does not contain %q", e.Key)
}

// ContextFile is a file whose absolute file path and content
// need to be referenced while loading a graph.
type ContextFile struct {
	ID           string
	AbsolutePath string
	Content      []byte
}

type fileCache struct {
	rootDir string
	files   map[string]ContextFile
}

// FileCache is a container of ContextFiles, and a context (root)
// directory path to be used in conjunction with files that do not
// provide an absolute file path.
type FileCache interface {
	RootDir() string
	LoadContext() error
	GetByKey(fileKey string) (*ContextFile, bool)
	AbsPathByKey(fileKey string) (string, error)
	ContentByKey(fileKey string) []byte
	Contents() map[string][]byte
	Files() map[string]ContextFile
}

// NewFileCacheUsingContext creates a mapping of files to their absolute paths.
// rootDir is the context directory in which relative paths are resolved.
// 'files' is a mapping of the desired file key to a relative or absolute
// file path. Empty paths are skipped, so optional files can be passed as is.
func NewFileCacheUsingContext(rootDir string, files map[string]string) (FileCache, error) {
	absDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("error determining context directory absolute path %s (%w)", rootDir, err)
	}
	filesAbsPaths := map[string]ContextFile{}
	for key, f := range files {
		if f == "" {
			continue
		}
		abspath := f
		if !filepath.IsAbs(f) {
			abspath = filepath.Join(absDir, f)
		}
		filesAbsPaths[key] = ContextFile{
			ID:           f,
			AbsolutePath: abspath,
		}
	}
	return &fileCache{
		rootDir: absDir,
		files:   filesAbsPaths,
	}, nil
}

// NewFileCache creates a file cache from contents already in memory.
// The keys in fileContents become the keys, IDs and paths of the
// context files.
func NewFileCache(rootDir string, fileContents map[string][]byte) FileCache {
	files := map[string]ContextFile{}
	for key, content := range fileContents {
		files[key] = ContextFile{
			ID:           key,
			AbsolutePath: key,
			Content:      content,
		}
	}
	return &fileCache{
		rootDir: rootDir,
		files:   files,
	}
}

// LoadContext reads the content of each context file into Content.
func (fc *fileCache) LoadContext() error {
	result := make(map[string]ContextFile, len(fc.files))
	for key, cf := range fc.files {
		fileData, err := os.ReadFile(filepath.Clean(cf.AbsolutePath))
		if err != nil {
			return fmt.Errorf("error reading file %s (%w)", cf.AbsolutePath, err)
		}
		result[key] = ContextFile{
			ID:           cf.ID,
			AbsolutePath: cf.AbsolutePath,
			Content:      fileData,
		}
	}
	fc.files = result
	return nil
}

func (fc *fileCache) RootDir() string {
	return fc.rootDir
}

func (fc *fileCache) GetByKey(fileKey string) (*ContextFile, bool) {
	cf, ok := fc.files[fileKey]
	if !ok {
		return nil, false
	}
	return &cf, true
}

// AbsPathByKey returns the absolute file path of a given file key.
func (fc *fileCache) AbsPathByKey(fileKey string) (string, error) {
	cf, ok := fc.GetByKey(fileKey)
	if !ok {
		return "", ErrNotInCache{fileKey}
	}
	return cf.AbsolutePath, nil
}

// ContentByKey returns the file content of a given file key, if it
// exists in the file cache, nil otherwise.
func (fc *fileCache) ContentByKey(fileKey string) []byte {
	cf, ok := fc.GetByKey(fileKey)
	if !ok {
		return nil
	}
	return cf.Content
}

// Contents returns a mapping of the file cache's file keys to file Content.
func (fc *fileCache) Contents() map[string][]byte {
	result := map[string][]byte{}
	for key, f := range fc.files {
		result[key] = f.Content
	}
	return result
}

func (fc *fileCache) Files() map[string]ContextFile {
	return fc.files
}

// MergeFileCaches merges file caches sharing the same root directory.
// Later caches overwrite keys of earlier ones; nil caches are skipped.
func MergeFileCaches(fileCaches ...FileCache) (FileCache, error) {
	cache := map[string]ContextFile{}
	rootDir := ""
	first := true
	for _, fc := range fileCaches {
		if fc == nil {
			continue
		}
		if !first && fc.RootDir() != rootDir {
			return nil, fmt.Errorf("cannot merge file caches with different root directories %s and %s", rootDir, fc.RootDir())
		}
		first = false
		rootDir = fc.RootDir()
		for key, contextFile := range fc.Files() {
			cache[key] = contextFile
		}
	}
	return &fileCache{
		rootDir: rootDir,
		files:   cache,
	}, nil
}
