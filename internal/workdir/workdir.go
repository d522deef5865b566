// Package workdir locates the project root whose .dropdown/ directory holds
// the configuration and the selection history.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// ConfigEnv names a config file; its project becomes the root.
	ConfigEnv = "DROPDOWN_CONFIG"

	redirectFile = ".dropdown-root"
	dataDir      = ".dropdown"
)

// Source tells which rule picked the root.
type Source int

const (
	SourceWorkingDir Source = iota
	SourceEnv
	SourceRedirect
	SourceDataDir
	SourceGit
)

func (s Source) String() string {
	switch s {
	case SourceEnv:
		return "env"
	case SourceRedirect:
		return "redirect"
	case SourceDataDir:
		return "data-dir"
	case SourceGit:
		return "git"
	default:
		return "working-dir"
	}
}

// Root is a resolved project root.
type Root struct {
	Dir    string
	Source Source
}

// Resolver finds the root for a starting directory. The zero value reads the
// process environment and asks git for the repository top level.
type Resolver struct {
	Getenv  func(string) string
	GitRoot func(dir string) (string, error)
}

// Resolve picks the root for start, first match wins:
//
//	$DROPDOWN_CONFIG      the project owning that file
//	.dropdown-root        in start or any parent up to the git top level
//	.dropdown/            in start or any parent up to the git top level
//	git top level
//	start itself
func (r Resolver) Resolve(start string) Root {
	if start == "" {
		return Root{}
	}
	start = filepath.Clean(start)

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if dir, ok := configRoot(getenv(ConfigEnv)); ok {
		return Root{Dir: dir, Source: SourceEnv}
	}

	gitRoot := r.gitTopLevel(start)
	for dir := start; ; dir = filepath.Dir(dir) {
		if target, ok := readRedirect(dir); ok {
			return Root{Dir: target, Source: SourceRedirect}
		}
		if isDir(filepath.Join(dir, dataDir)) {
			return Root{Dir: dir, Source: SourceDataDir}
		}
		if dir == gitRoot || filepath.Dir(dir) == dir {
			break
		}
	}

	if gitRoot != "" {
		return Root{Dir: gitRoot, Source: SourceGit}
	}
	return Root{Dir: start, Source: SourceWorkingDir}
}

// Resolve uses the default Resolver.
func Resolve(start string) Root {
	return Resolver{}.Resolve(start)
}

func (r Resolver) gitTopLevel(dir string) string {
	find := r.GitRoot
	if find == nil {
		find = gitTopLevel
	}
	root, err := find(dir)
	if err != nil || root == "" {
		return ""
	}
	return filepath.Clean(root)
}

// configRoot maps a config path to its project: the parent of .dropdown/
// for the standard layout, otherwise the directory holding the file.
func configRoot(path string) (string, bool) {
	if strings.TrimSpace(path) == "" {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	dir := filepath.Dir(abs)
	if filepath.Base(dir) == dataDir {
		dir = filepath.Dir(dir)
	}
	return dir, true
}

// readRedirect follows a .dropdown-root file one hop. Relative targets are
// resolved against dir.
func readRedirect(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, redirectFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func gitTopLevel(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
