package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "fisheriescli/internal/errors"
	"fisheriescli/internal/schema"
)

// FileInfo describes a discovered input file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates variant input files in a raw-data directory.
type Discovery struct {
	inputDir string
}

// NewDiscovery creates a discovery instance rooted at inputDir.
func NewDiscovery(inputDir string) *Discovery {
	return &Discovery{inputDir: inputDir}
}

// FindVariantInput returns the input file for the given variant. Upstream
// tidying names files with a "tidied" prefix pattern; older drops omit it, so
// a fallback pattern is tried before giving up. When several files match, the
// most recently modified wins.
func (d *Discovery) FindVariantInput(variant string) (FileInfo, error) {
	var patterns []string
	switch variant {
	case schema.VariantCommercial:
		patterns = []string{"*tidied_comm_ev*", "*comm_ev*"}
	case schema.VariantNonCommercial:
		patterns = []string{"*tidied_noncomm_ev*", "*noncomm_ev*"}
	default:
		return FileInfo{}, apperrors.NewConfigError("unknown dataset variant", nil).
			WithContext("variant", variant)
	}

	for _, pattern := range patterns {
		matches, err := d.findByPattern(pattern)
		if err != nil {
			return FileInfo{}, err
		}
		if variant == schema.VariantCommercial {
			matches = excludeNonCommercial(matches)
		}
		if len(matches) > 0 {
			return latest(matches), nil
		}
	}

	return FileInfo{}, apperrors.NewNotFoundError(variant + " input file").
		WithContext("input_dir", d.inputDir)
}

// findByPattern globs the input directory for loadable files matching the
// name pattern.
func (d *Discovery) findByPattern(pattern string) ([]FileInfo, error) {
	entries, err := os.ReadDir(d.inputDir)
	if err != nil {
		return nil, apperrors.NewLoadError("cannot read input directory", err).
			WithContext("input_dir", d.inputDir)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !loadableExtension(entry.Name()) {
			continue
		}
		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, apperrors.NewConfigError("invalid file pattern", err).
				WithContext("pattern", pattern)
		}
		if !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(d.inputDir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// excludeNonCommercial drops files whose names belong to the other variant.
// The fallback commercial pattern would otherwise match "noncomm" files too.
func excludeNonCommercial(files []FileInfo) []FileInfo {
	var filtered []FileInfo
	for _, file := range files {
		if strings.Contains(strings.ToLower(file.Name), "noncomm") {
			continue
		}
		filtered = append(filtered, file)
	}
	return filtered
}

func latest(files []FileInfo) FileInfo {
	best := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(best.ModTime) {
			best = file
		}
	}
	return best
}

func loadableExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}
