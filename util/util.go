// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package util

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-homedir"

	"github.com/hashicorp/secretscrub/jsondoc"
)

// jsonIndent is the indentation used for every JSON file written back to disk.
const jsonIndent = "  "

// defaultFilePerms applies when the destination does not exist yet.
const defaultFilePerms fs.FileMode = 0644

// ExpandPath resolves a leading "~" in path to the current user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path '%s': %w", path, err)
	}
	return expanded, nil
}

// ReadJSONFile loads and parses the JSON document at path.
func ReadJSONFile(path string) (*jsondoc.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := jsondoc.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in '%s': %w", path, err)
	}
	return doc, nil
}

// WriteJSONFile renders doc with two-space indentation and a trailing newline and replaces the file at path with
// it. The new content is written to a temporary file beside path and renamed into place, so path holds either the
// old document or the complete new one. An existing file keeps its permission bits.
func WriteJSONFile(path string, doc *jsondoc.Value) error {
	buf := new(bytes.Buffer)
	if err := jsondoc.Encode(buf, doc, jsonIndent); err != nil {
		return fmt.Errorf("failed to encode JSON for '%s': %w", path, err)
	}
	return WriteFileAtomic(path, buf.Bytes())
}

// WriteFileAtomic writes data to a temporary file in the same directory as path, syncs it, and renames it over path.
// When path is a symlink the file it points to is replaced and the link itself is left in place.
func WriteFileAtomic(path string, data []byte) (err error) {
	resolved, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		path = resolved
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	perms := defaultFilePerms
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perms = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				hclog.L().Warn("failed to remove temporary file", "path", tmpName, "error", rmErr)
			}
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perms); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
