// Snapshot file helpers for export and import. All writes are atomic:
// temp file in the target directory, fsync, rename.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// readSnapshotFile reads one JSONL file from a snapshot directory and
// returns each non-empty, parseable line as a json.RawMessage.
// Malformed lines are skipped so a partially damaged snapshot still
// imports.
func readSnapshotFile(dir, name string) ([]json.RawMessage, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeSnapshotFile atomically writes records as JSONL into dir/name.
func writeSnapshotFile(dir, name string, records []json.RawMessage) error {
	return writeAtomic(filepath.Join(dir, name), func(w *bufio.Writer) error {
		for _, rec := range records {
			if _, err := w.Write(rec); err != nil {
				return fmt.Errorf("writing record: %w", err)
			}
			if err := w.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing newline: %w", err)
			}
		}
		return nil
	})
}

// writeManifest atomically writes the snapshot manifest as indented
// JSON into dir.
func writeManifest(dir string, m manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return writeAtomic(filepath.Join(dir, manifestFile), func(w *bufio.Writer) error {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
		return w.WriteByte('\n')
	})
}

// readManifest reads the manifest from a snapshot directory. A missing
// or unparseable manifest yields ok=false; snapshots without one are
// still importable.
func readManifest(dir string) (manifest, bool) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return manifest{}, false
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifest{}, false
	}
	return m, true
}

// writeAtomic writes a file via a temp file in the same directory,
// syncing before the rename so a crash never leaves a torn file.
func writeAtomic(path string, fill func(*bufio.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		return cleanup(err)
	}
	if err := w.Flush(); err != nil {
		return cleanup(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
