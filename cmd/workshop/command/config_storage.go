package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-workshop/internal/game"
	"github.com/pixil98/go-workshop/internal/storage"
)

type StorageConfig struct {
	Items  AssetConfig[*game.ItemSpec]  `json:"items"`
	Emotes AssetConfig[*game.EmoteSpec] `json:"emotes"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Items.Validate("items"))
	// The emote catalog is optional; the shipped sets cover every pool.
	if c.Emotes.Path != "" {
		el.Add(c.Emotes.Validate("emotes"))
	}
	return el.Err()
}

func (c *StorageConfig) BuildItemStore() (*storage.FileStore[*game.ItemSpec], error) {
	return c.Items.BuildFileStore()
}

// BuildEmoteSets partitions the emote assets into their pools. With no emote
// path configured the shipped defaults are used.
func (c *StorageConfig) BuildEmoteSets() (game.EmoteSets, error) {
	if c.Emotes.Path == "" {
		return game.DefaultEmoteSets(), nil
	}

	store, err := c.Emotes.BuildFileStore()
	if err != nil {
		return game.EmoteSets{}, fmt.Errorf("creating emote store: %w", err)
	}

	var sets game.EmoteSets
	for id, spec := range store.GetAll() {
		switch spec.Set {
		case game.EmoteSetArrival:
			sets.Arrival = append(sets.Arrival, id)
		case game.EmoteSetPleased:
			sets.Pleased = append(sets.Pleased, id)
		case game.EmoteSetUnimpressed:
			sets.Unimpressed = append(sets.Unimpressed, id)
		}
	}

	if err := sets.Validate(); err != nil {
		return game.EmoteSets{}, fmt.Errorf("validating emote sets: %w", err)
	}

	return sets, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
