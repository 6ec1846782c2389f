package apigen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// writeFile writes data to root+path, creating any missing parent
// directories. path is always "/"-separated (as produced by Generate);
// it is converted to the host's separator before joining with root.
func writeFile(root, path string, data []byte) error {
	cleaned := strings.TrimPrefix(path, "/")
	target := filepath.Join(root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
