package cartstore

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type cartState struct {
	Items []Item `json:"items"`
}

// FilePersister serializes the whole cart to a JSON file on every change.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Path() string { return p.path }

func (p *FilePersister) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(cartState{Items: items})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Load accepts both a bare item array and the {items: []} wrapper.
func (p *FilePersister) Load() ([]Item, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Item{}, nil
		}
		return nil, err
	}

	var bare []Item
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var wrapped cartState
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Items == nil {
			return []Item{}, nil
		}
		return wrapped.Items, nil
	}

	return []Item{}, nil
}
