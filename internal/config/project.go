package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectDirEnv is set by the host to the project root for every hook.
const ProjectDirEnv = "CLAUDE_PROJECT_DIR"

// ResolveProjectDir picks the project directory. In order: the explicit
// flag value, $CLAUDE_PROJECT_DIR, the payload cwd, then the project root
// found above the process working directory.
func ResolveProjectDir(flagDir, payloadCwd string) string {
	for _, dir := range []string{flagDir, os.Getenv(ProjectDirEnv), payloadCwd} {
		if dir != "" {
			if abs, err := filepath.Abs(dir); err == nil {
				return abs
			}
			return dir
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return wd
	}
	return root
}

// FindProjectRoot finds the project root directory.
// It walks up the directory tree looking for a vibehooks config file, a
// .claude directory or a .git directory, and returns startDir when none is
// found.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if fileExists(filepath.Join(currentDir, ProjectFileYAML)) ||
			fileExists(filepath.Join(currentDir, ProjectFileYML)) ||
			dirExists(filepath.Join(currentDir, ".claude")) ||
			dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}
