// Package fileutil discovers tutorial documents on disk.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ScanOptions configures document discovery.
type ScanOptions struct {
	// Include is a regex matched against filenames without extension;
	// empty matches everything
	Include string
	// Exclude is a regex that removes matching files after Include
	Exclude string
	// Extensions is the list of file extensions to accept (e.g. ".md")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
}

// ScanResult contains the results of a directory scan.
type ScanResult struct {
	// Files holds the matched paths in sorted order
	Files []string
	// Errors holds non-fatal errors encountered while walking
	Errors []error
}

// Discover resolves a mix of file and directory arguments into a sorted,
// de-duplicated document list. Files are accepted as given (extension
// permitting); directories are scanned with the provided options.
func Discover(paths []string, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{}
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result.Files = append(result.Files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		scanned, err := ScanDirectory(path, opts)
		if err != nil {
			return nil, err
		}
		result.Errors = append(result.Errors, scanned.Errors...)
		for _, f := range scanned.Files {
			add(f)
		}
	}

	sort.Strings(result.Files)
	return result, nil
}

// ScanDirectory scans a directory for documents matching the options.
// Hidden directories are always skipped.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var includeRe, excludeRe *regexp.Regexp
	if opts.Include != "" {
		includeRe, err = regexp.Compile(opts.Include)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern: %w", err)
		}
	}
	if opts.Exclude != "" {
		excludeRe, err = regexp.Compile(opts.Exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern: %w", err)
		}
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	result := &ScanResult{}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		filename := d.Name()

		if len(extMap) > 0 {
			if !extMap[strings.ToLower(filepath.Ext(filename))] {
				return nil
			}
		}

		name := strings.TrimSuffix(filename, filepath.Ext(filename))
		if includeRe != nil && !includeRe.MatchString(name) {
			return nil
		}
		if excludeRe != nil && excludeRe.MatchString(name) {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}
