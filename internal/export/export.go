// Package export writes a remote datasource configuration back to local
// files. The output directory mirrors the layout the assembler reads, so a
// pulled configuration can be inspected, edited, and pushed again without
// manual rework. The indexing API key is never written out.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/donaldgifford/gleanctl/internal/assemble"
	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/icon"
)

// Opts configures an export run.
type Opts struct {
	// Dir is the parent directory the export directory is created under.
	// Defaults to the current working directory.
	Dir string

	// Instance is the Glean instance name recorded in the exported env
	// file, so the file works with setup as-is once a key is filled in.
	Instance string

	// Logger receives progress output. Defaults to slog.Default.
	Logger *slog.Logger
}

// Manifest records which files an export produced. Artifact fields are empty
// when the artifact was absent from the remote record or failed to write.
type Manifest struct {
	Dir             string
	EnvFile         string
	ObjectTypesFile string
	QuickLinksFile  string
	IconLightFile   string
	IconDarkFile    string
}

// Files returns the written artifact names in a stable display order.
func (m *Manifest) Files() []string {
	var files []string

	for _, name := range []string{m.EnvFile, m.ObjectTypesFile, m.QuickLinksFile, m.IconLightFile, m.IconDarkFile} {
		if name != "" {
			files = append(files, name)
		}
	}

	return files
}

// ArtifactError describes a single artifact that could not be written.
type ArtifactError struct {
	Artifact string
	Err      error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("exporting %s: %v", e.Artifact, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// PartialError reports an export that wrote some artifacts but not others.
// The accompanying manifest still describes everything that succeeded.
type PartialError struct {
	Failures []*ArtifactError
}

func (e *PartialError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Artifact)
	}

	return fmt.Sprintf("export finished with %d failed artifact(s): %s", len(e.Failures), strings.Join(names, ", "))
}

// Run exports a remote datasource record into <id>-config/ under opts.Dir.
//
// Translation errors are fatal and occur before anything is written. Once
// writing starts, each artifact fails independently: a bad icon or an
// unwritable file is collected into a *PartialError while the remaining
// artifacts are still produced, and the returned manifest reflects what
// actually landed on disk.
func Run(remote *glean.CustomDatasourceConfig, opts *Opts) (*Manifest, error) {
	if opts == nil {
		opts = &Opts{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if remote == nil {
		return nil, errors.New("remote configuration is required")
	}

	cfg, err := FromWire(remote)
	if err != nil {
		return nil, err
	}

	if cfg.ID == "" {
		return nil, errors.New("remote configuration has no datasource name")
	}

	parent := opts.Dir
	if parent == "" {
		parent = "."
	}

	dir := filepath.Join(parent, cfg.ID+"-config")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	logger.Debug("exporting datasource configuration", "datasource", cfg.ID, "dir", dir)

	manifest := &Manifest{Dir: dir}

	var failures []*ArtifactError

	fail := func(artifact string, err error) {
		logger.Warn("artifact export failed", "artifact", artifact, "error", err)
		failures = append(failures, &ArtifactError{Artifact: artifact, Err: err})
	}

	if cfg.IconLightmode != "" {
		name, err := writeIcon(dir, "icon-lightmode", cfg.IconLightmode)
		if err != nil {
			fail("lightmode icon", err)
		} else {
			manifest.IconLightFile = name
		}
	}

	if cfg.IconDarkmode != "" {
		name, err := writeIcon(dir, "icon-darkmode", cfg.IconDarkmode)
		if err != nil {
			fail("darkmode icon", err)
		} else {
			manifest.IconDarkFile = name
		}
	}

	if len(cfg.ObjectTypes) > 0 {
		doc := datasource.ObjectTypesFile{ObjectTypes: cfg.ObjectTypes}
		if err := writeJSON(filepath.Join(dir, assemble.ObjectTypesFileName), doc); err != nil {
			fail("object types file", err)
		} else {
			manifest.ObjectTypesFile = assemble.ObjectTypesFileName
		}
	}

	if len(cfg.QuickLinks) > 0 {
		doc := datasource.QuickLinksFile{QuickLinks: cfg.QuickLinks}
		if err := writeJSON(filepath.Join(dir, assemble.QuickLinksFileName), doc); err != nil {
			fail("quick links file", err)
		} else {
			manifest.QuickLinksFile = assemble.QuickLinksFileName
		}
	}

	// The env file references the icons by filename, falling back to the
	// conventional names when an icon was absent or failed, so the file
	// stays usable after the missing artifact is supplied by hand.
	iconLight := manifest.IconLightFile
	if iconLight == "" {
		iconLight = assemble.DefaultLightIconFile
	}

	iconDark := manifest.IconDarkFile
	if iconDark == "" {
		iconDark = assemble.DefaultDarkIconFile
	}

	envName := cfg.ID + ".env"

	content, err := renderEnvFile(cfg, opts.Instance, iconLight, iconDark)
	if err != nil {
		fail("env file", err)
	} else if err := os.WriteFile(filepath.Join(dir, envName), content, 0o644); err != nil {
		fail("env file", fmt.Errorf("writing %s: %w", envName, err))
	} else {
		manifest.EnvFile = envName
	}

	if len(failures) > 0 {
		return manifest, &PartialError{Failures: failures}
	}

	logger.Debug("export complete", "files", len(manifest.Files()))

	return manifest, nil
}

func writeIcon(dir, base, dataURL string) (string, error) {
	decoded, err := icon.Parse(dataURL)
	if err != nil {
		return "", err
	}

	name := base + "." + decoded.Ext()
	if err := os.WriteFile(filepath.Join(dir, name), decoded.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return name, nil
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return nil
}
