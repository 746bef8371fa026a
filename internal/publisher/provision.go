// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/tidwall/jsonc"
)

const (
	// DirName is the provisioned copy under the data directory.
	DirName = "publisher"
	// ConfigFileName is the production config inside the bundle.
	ConfigFileName = "config.production.json"
)

// Provision copies the bundle into <dataDir>/publisher on first run and
// rewrites its config paths. An existing directory is left untouched.
//
// The copy is assembled in a temporary sibling directory and renamed into
// place, so an interrupted first run leaves nothing behind.
func (p *Publisher) Provision(ctx context.Context) error {
	if _, err := os.Stat(p.dir); err == nil {
		p.logger.Debug().Str("dir", p.dir).Msg("publisher already provisioned")
		p.setProvisioned()
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking publisher directory: %w", err)
	}

	info, err := os.Stat(p.cfg.BundleDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrBundleMissing, p.cfg.BundleDir)
	}

	p.logger.Info().Str("bundle", p.cfg.BundleDir).Str("dir", p.dir).Msg("first run detected, provisioning publisher")

	parent := filepath.Dir(p.dir)
	if err = os.MkdirAll(parent, 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	staging, err := os.MkdirTemp(parent, ".publisher-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err = copyTree(ctx, p.cfg.BundleDir, staging); err != nil {
		return fmt.Errorf("copying bundle: %w", err)
	}
	if err = rewriteConfig(filepath.Join(staging, ConfigFileName), p.dir); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = os.Rename(staging, p.dir); err != nil {
		return fmt.Errorf("publishing provisioned directory: %w", err)
	}

	p.logger.Info().Str("dir", p.dir).Msg("publisher provisioned")
	p.setProvisioned()
	return nil
}

// rewriteConfig points the database file and content path of the config at
// finalDir. Keys that are absent or empty stay absent or empty. Comments and
// trailing commas are accepted on input; the output is plain JSON.
func rewriteConfig(path, finalDir string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading publisher config: %w", err)
	}

	var doc map[string]any
	if err = json.Unmarshal(jsonc.ToJSON(raw), &doc); err != nil {
		return fmt.Errorf("parsing publisher config: %w", err)
	}

	if conn, ok := lookupObject(doc, "database", "connection"); ok && isSet(conn["filename"]) {
		conn["filename"] = filepath.Join(finalDir, "content", "data", "ghost-local.db")
	}
	if paths, ok := lookupObject(doc, "paths"); ok && isSet(paths["contentPath"]) {
		paths["contentPath"] = filepath.Join(finalDir, "content")
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding publisher config: %w", err)
	}
	return utils.WriteFileAtomic(path, out, 0o600)
}

func lookupObject(doc map[string]any, keys ...string) (map[string]any, bool) {
	cur := doc
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func isSet(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	default:
		return true
	}
}

// copyTree copies src into the existing directory dst, keeping file modes
// and symlinks.
func copyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if rel == "." {
				return nil
			}
			return os.Mkdir(target, info.Mode().Perm()|0o700)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.Type().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm|0o600)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
