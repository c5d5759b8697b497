package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/calinea"
	"github.com/aretw0/calinea/internal/logging"
)

// PackEnv names the environment variable holding the default pack path.
const PackEnv = "CALINEA_PACK"

// packCandidates are looked up, in order, when no pack is configured.
var packCandidates = []string{"calinea.pack.json", "pack.json", "pack.jsonc", "pack.yaml", "pack.yml"}

// Options carries the global command line flags.
type Options struct {
	PackPath string
	Language string
	LogLevel string
	// Dir is searched for a conventional pack file when neither PackPath
	// nor PackEnv is set. Empty disables discovery.
	Dir string
}

// NewLogger builds the command line logger. Output goes to w so rendered
// text on stdout stays clean.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(w, lvl), nil
}

// NewToolkit initializes a Toolkit with standard CLI conventions.
func NewToolkit(opts Options, logger *slog.Logger) (*calinea.Toolkit, error) {
	kitOpts := []calinea.Option{calinea.WithLogger(logger)}

	if path := resolvePackPath(opts); path != "" {
		logger.Debug("using pack", "path", path)
		kitOpts = append(kitOpts, calinea.WithPackFile(path))
	}
	if opts.Language != "" {
		kitOpts = append(kitOpts, calinea.WithLanguage(opts.Language))
	}

	kit, err := calinea.New(kitOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing toolkit: %w", err)
	}
	return kit, nil
}

// resolvePackPath picks the flag, then the environment, then a discovered file.
func resolvePackPath(opts Options) string {
	if opts.PackPath != "" {
		return opts.PackPath
	}
	if env := os.Getenv(PackEnv); env != "" {
		return env
	}
	if opts.Dir == "" {
		return ""
	}
	return discoverPack(opts.Dir)
}

// discoverPack returns the first conventional pack file in dir, or "".
func discoverPack(dir string) string {
	for _, name := range packCandidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
