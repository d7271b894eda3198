package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the suffix of script files.
const SourceExt = ".htmldsl"

// ErrNoModule is returned by FindModuleRoot when no go.mod file is found.
var ErrNoModule = errors.New("no go.mod found")

// FindModuleRoot returns the closest directory at or above start holding a
// go.mod file. A directory named go.mod does not count.
func FindModuleRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for d, prev := abs, ""; d != prev; d, prev = filepath.Dir(d), d {
		if st, err := os.Stat(filepath.Join(d, "go.mod")); err == nil && st.Mode().IsRegular() {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w at or above %s", ErrNoModule, abs)
}

// CollectPaths resolves Go-like patterns relative to cwd:
//
//	./...            recurse from cwd
//	./dir            only that directory (non-recursive)
//	./dir/...        recurse from that directory
//	./page.htmldsl   only that file
//
// The result holds absolute paths without duplicates, in pattern order.
func CollectPaths(cwd string, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(p string) error {
		abs, err := absFrom(cwd, p)
		if err != nil {
			return err
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
		return nil
	}

	for _, raw := range patterns {
		pat := strings.TrimSpace(raw)
		if pat == "" {
			continue
		}

		// Recursive pattern: <dir>/...
		if strings.HasSuffix(pat, "/...") || pat == "..." {
			base := strings.TrimSuffix(strings.TrimSuffix(pat, "..."), "/")
			if base == "" {
				base = "."
			}
			dir, err := absFrom(cwd, base)
			if err != nil {
				return nil, err
			}
			if err := walkSources(dir, add); err != nil {
				return nil, err
			}
			continue
		}

		target, err := absFrom(cwd, pat)
		if err != nil {
			return nil, err
		}
		st, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if st.IsDir() {
			paths, err := DirPaths(target)
			if err != nil {
				return nil, err
			}
			for _, p := range paths {
				if err := add(p); err != nil {
					return nil, err
				}
			}
			continue
		}
		if !strings.HasSuffix(target, SourceExt) {
			return nil, fmt.Errorf("htmldsl: not a %s file: %s", SourceExt, target)
		}
		if err := add(target); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// DirPaths lists the script files directly inside dir.
func DirPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if isSource(e) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func walkSources(root string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		switch {
		case de.IsDir() && path != root && skipDir(de.Name()):
			return filepath.SkipDir
		case isSource(de):
			return add(path)
		default:
			return nil
		}
	})
}

func isSource(de fs.DirEntry) bool {
	return !de.IsDir() && strings.HasSuffix(de.Name(), SourceExt)
}

func skipDir(name string) bool {
	return name == "vendor" || name == "node_modules" || name == "testdata" || strings.HasPrefix(name, ".")
}

func absFrom(cwd, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	return filepath.Abs(p)
}
