package audit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Options configures a scan.
type Options struct {
	Extension    string
	KeepPatterns []string
}

func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.KeepPatterns == nil {
		o.KeepPatterns = DefaultKeepPatterns
	}
	return o
}

// Discover walks root and returns the slash-separated paths, relative to
// root, of every non-directory entry whose name ends with ext. The order is
// the walk order. Any traversal error aborts the walk and is returned.
func Discover(root, ext string) ([]string, error) {
	if root == "" {
		return nil, errors.New("root path is required")
	}
	files := []string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// Scan discovers matching files under root and partitions them.
func Scan(root string, opts Options) (ScanResult, error) {
	opts = opts.withDefaults()
	files, err := Discover(root, opts.Extension)
	if err != nil {
		return ScanResult{}, err
	}
	result := Partition(files, opts.KeepPatterns)
	result.Root = root
	return result, nil
}

// CountConverted reports, for each converted directory that exists under
// root, how many files ending with ext it still contains. Directories that
// do not exist are left out.
func CountConverted(root string, dirs []string, ext string) ([]ConvertedCount, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	counts := []ConvertedCount{}
	for _, dir := range dirs {
		full := filepath.Join(root, filepath.FromSlash(dir))
		if _, err := os.Stat(full); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		files, err := Discover(full, ext)
		if err != nil {
			return nil, err
		}
		counts = append(counts, ConvertedCount{Dir: dir, Files: len(files)})
	}
	return counts, nil
}

// InConverted reports whether a scanned path lies under one of the converted
// directory prefixes.
func InConverted(p string, dirs []string) bool {
	for _, dir := range dirs {
		prefix := strings.TrimSuffix(path.Clean(dir), "/") + "/"
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
