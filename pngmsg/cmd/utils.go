package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"pngmsg-tools/go/pkg/logbowl"
	"pngmsg-tools/go/pkg/png"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/valyala/gozstd"
)

const maxSensibleReadSize = 2 * 1024 * 1024 * 1024 // 2 GB

// zstdLevel is the compression level used for --zstd payloads.
const zstdLevel = 19

func readPNGFile(log logbowl.Logger, path string) (*png.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxSensibleReadSize {
		return nil, fmt.Errorf("file size %d exceeds limit of %d bytes", info.Size(), maxSensibleReadSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.Debug("file", "read", "success", "Read input file", "path", path, "bytes", len(data))

	f, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	log.Debug("png", "parse", "success", "Parsed PNG", "path", path, "chunks", len(f.Chunks()))
	return f, nil
}

// writePNGFile writes f to a temporary file next to path and renames it into
// place. An existing file keeps its permissions; symlinks are written through.
func writePNGFile(log logbowl.Logger, path string, f *png.File) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pngmsg-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := f.WriteTo(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	log.Debug("file", "write", "success", "Wrote output file", "path", path, "bytes", n)
	return nil
}

func compressPayload(log logbowl.Logger, data []byte) []byte {
	out := gozstd.CompressLevel(nil, data, zstdLevel)
	log.Debug("codec", "compress", "success", "Compressed payload", "in", len(data), "out", len(out))
	return out
}

func decompressPayload(log logbowl.Logger, data []byte) ([]byte, error) {
	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	log.Debug("codec", "decompress", "success", "Decompressed payload", "in", len(data), "out", len(out))
	return out, nil
}

func payloadText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", png.ErrInvalidUTF8
	}
	return string(data), nil
}

// ExpandInputs resolves each argument to a list of files. Existing paths are
// taken as is; anything else is treated as a doublestar glob pattern. Paths
// matching one of excludes are dropped. Order follows the arguments and
// duplicates are removed.
func ExpandInputs(log logbowl.Logger, patterns, excludes []string) ([]string, error) {
	for _, ex := range excludes {
		if !doublestar.ValidatePattern(ex) {
			return nil, fmt.Errorf("invalid exclude pattern %q", ex)
		}
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		var matches []string
		if _, err := os.Stat(pattern); err == nil {
			matches = []string{pattern}
		} else {
			if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
				return nil, fmt.Errorf("invalid pattern %q", pattern)
			}
			matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", pattern)
			}
			log.Debug("glob", "expand", "success", "Expanded pattern", "pattern", pattern, "matches", len(matches))
		}

		for _, m := range matches {
			excluded, err := isExcluded(m, excludes)
			if err != nil {
				return nil, err
			}
			if excluded {
				log.Debug("glob", "expand", "skip", "Excluding path based on pattern", "path", m)
				continue
			}
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func isExcluded(path string, excludes []string) (bool, error) {
	slashed := filepath.ToSlash(path)
	for _, ex := range excludes {
		match, err := doublestar.Match(ex, slashed)
		if err != nil {
			return false, err
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}
