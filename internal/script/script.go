// Package script reads the files jarvis consumes around the matching
// core: line scripts, JSON imports and env files.
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrScriptRead   = errors.New("could not read script from the specified location")
	ErrJSONNotFound = errors.New("could not read the JSON file from the specified location")
	ErrInvalidJSON  = errors.New("invalid JSON import")
	ErrEnvRead      = errors.New("could not read env file")
)

// commentPrefix starts a comment line in a script.
const commentPrefix = "#"

// ParseScript reads a script and returns its command lines. Empty,
// whitespace-only and comment lines are dropped; the remaining lines are
// returned as written.
func ParseScript(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrScriptRead, filename, err)
	}
	return ParseLines(string(content)), nil
}

// ParseLines filters script content the same way ParseScript does.
func ParseLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ValidateScript reports whether file has the given extension
// (without the leading dot).
func ValidateScript(extension, file string) bool {
	return filepath.Ext(file) == "."+extension
}

// ValidateEnvFileName reports whether the last dot-separated part of
// envFile equals fileName, so ".jarvis.env" matches "env".
func ValidateEnvFileName(fileName, envFile string) bool {
	parts := strings.Split(envFile, ".")
	return parts[len(parts)-1] == fileName
}

// ImportJSON reads a JSON file and decodes it into v. A missing file
// yields ErrJSONNotFound, anything else that goes wrong yields
// ErrInvalidJSON.
func ImportJSON(filename string, v any) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %w", ErrJSONNotFound, filename, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrInvalidJSON, filename, err)
	}

	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidJSON, filename, err)
	}
	return nil
}

// LoadEnv exports the variables of a dotenv file into the process
// environment. Variables that are already set are left alone.
func LoadEnv(filename string) error {
	if err := godotenv.Load(filename); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEnvRead, filename, err)
	}
	return nil
}

// Collect expands the given paths into the sorted list of script files
// with the given extension. Directories are walked recursively; files
// named explicitly must have the extension too.
func Collect(paths []string, extension string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}

		if !info.IsDir() {
			if !ValidateScript(extension, path) {
				return nil, fmt.Errorf("%s is not a .%s script", path, extension)
			}
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(filePath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && ValidateScript(extension, filePath) {
				files = append(files, filePath)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
