package media

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// LocalStore keeps objects on the local disk. Intended for development and
// single-node deployments only.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore() (*LocalStore, error) {
	root := viper.GetString("media.local_root")
	if len(root) == 0 {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	return &LocalStore{
		root:    root,
		baseURL: viper.GetString("media.local_base_url"),
	}, nil
}

func (v *LocalStore) Store(data []byte, contentType string) (Object, error) {
	id := uuid.NewString()
	if err := os.WriteFile(filepath.Join(v.root, id), data, 0o644); err != nil {
		return Object{}, err
	}

	return Object{
		URL:      v.baseURL + "/" + id,
		ObjectID: id,
	}, nil
}

func (v *LocalStore) Release(objectID string) error {
	err := os.Remove(filepath.Join(v.root, filepath.Base(objectID)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
