package assemble

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/donaldgifford/gleanctl/internal/datasource"
)

// Conventional auxiliary definition files read from the working directory.
const (
	ObjectTypesFileName = "object_types.json"
	QuickLinksFileName  = "quick_links.json"
)

// loadObjectTypes reads the object definitions file. The file is optional:
// a missing or unparsable file degrades to no definitions with a warning,
// never a hard failure.
func loadObjectTypes(path string) ([]datasource.ObjectDefinition, string) {
	data, err := os.ReadFile(path) //nolint:gosec // path is resolved from the user's working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Sprintf("no %s found, continuing without object definitions", filepath.Base(path))
		}

		return nil, fmt.Sprintf("failed to load object definitions from %s: %v", path, err)
	}

	var doc datasource.ObjectTypesFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Sprintf("failed to load object definitions from %s: %v", path, err)
	}

	return doc.ObjectTypes, ""
}

// loadQuickLinks reads the quick links file, with the same degrade-to-empty
// behavior as loadObjectTypes.
func loadQuickLinks(path string) ([]datasource.QuickLink, string) {
	data, err := os.ReadFile(path) //nolint:gosec // path is resolved from the user's working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Sprintf("no %s found, continuing without quick links", filepath.Base(path))
		}

		return nil, fmt.Sprintf("failed to load quick links from %s: %v", path, err)
	}

	var doc datasource.QuickLinksFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Sprintf("failed to load quick links from %s: %v", path, err)
	}

	return doc.QuickLinks, ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
