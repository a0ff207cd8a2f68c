package manifest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/xcproj/internal/atomicfile"
	"github.com/aidanlsb/xcproj/internal/errs"
)

// Load reads and decodes the manifest at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound("Manifest not found: %s", path)
		}
		return nil, errs.Wrap(err, errs.KindOperationFailed, fmt.Sprintf("read manifest %s", path))
	}
	p, err := Unmarshal(data)
	if err != nil {
		return nil, errs.Wrap(err, errs.KindOperationFailed, fmt.Sprintf("parse manifest %s", path))
	}
	return p, nil
}

// Unmarshal decodes a manifest document.
func Unmarshal(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	p.normalize()
	return &p, nil
}

// Marshal encodes p with two-space indentation.
func Marshal(p *Project) ([]byte, error) {
	return encode(p)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Store writes manifests back to disk under a backup guard.
type Store struct {
	// KeepBackup leaves "<path>.bak" with the previous version.
	KeepBackup bool
	// Write replaces the default atomic writer.
	Write atomicfile.WriteFunc
}

// Save serializes p and replaces path. On failure the previous file is left
// intact and the error is PersistenceFailed.
func (s Store) Save(path string, p *Project) error {
	data, err := Marshal(p)
	if err != nil {
		return errs.PersistenceFailed(err, "encode manifest %s", path)
	}
	return s.WriteBytes(path, data)
}

// WriteBytes replaces path with data under a backup guard.
func (s Store) WriteBytes(path string, data []byte) error {
	err := atomicfile.Replace(path, data, atomicfile.Options{
		KeepBackup: s.KeepBackup,
		Write:      s.Write,
	})
	if err != nil {
		return errs.PersistenceFailed(err, "save %s", path)
	}
	return nil
}
