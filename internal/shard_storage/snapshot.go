package shard_storage

import (
	"encoding/json"
	"fmt"
	"github.com/klauspost/compress/zstd"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const compressedSuffix = ".zst"

// readSnapshot reads a litetable.Data JSON document, decompressing .zst files.
func readSnapshot(path string) (litetable.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, compressedSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed snapshot %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	var data litetable.Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return data, nil
}

// WriteSnapshot writes every row to path in the format Start reads, compressing when the path
// ends in .zst.
func (m *Manager) WriteSnapshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	b, err := json.Marshal(m.Data())
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if strings.HasSuffix(path, compressedSuffix) {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("failed to create snapshot encoder: %w", err)
		}
		b = enc.EncodeAll(b, nil)
		_ = enc.Close()
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}
