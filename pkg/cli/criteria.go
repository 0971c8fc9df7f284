package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// loadCriteria reads a TOML criteria file into v
func loadCriteria(path string, v any) error {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read criteria file", goerr.V("path", path))
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return goerr.Wrap(err, "failed to parse criteria file", goerr.V("path", path))
	}
	return nil
}

// openOutput returns the writer for --output; "-" and "" mean stdout
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	return f, f.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write JSON output")
	}
	return nil
}
