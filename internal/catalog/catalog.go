package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pondkeeper/pondkeeper/internal/domain"
)

// File is the on-disk catalog format.
type File struct {
	Items []domain.Item `json:"items"`

	// GiftWeights are the rarity weights used for gift-opening rolls.
	// Missing tiers default to DefaultGiftWeights.
	GiftWeights map[domain.Rarity]float64 `json:"gift_weights,omitempty"`
}

// DefaultGiftWeights is the rarity distribution for gift rolls when the
// catalog file does not override it.
var DefaultGiftWeights = map[domain.Rarity]float64{
	domain.RarityCommon:    0.55,
	domain.RarityUncommon:  0.25,
	domain.RarityRare:      0.12,
	domain.RarityEpic:      0.06,
	domain.RarityLegendary: 0.02,
}

// Catalog is the static, process-wide item table. Immutable after load and
// safe for concurrent readers.
type Catalog struct {
	items       map[string]domain.Item
	byRarity    map[domain.Rarity][]domain.Item
	giftWeights map[domain.Rarity]float64
}

// Load reads and validates a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return New(file.Items, file.GiftWeights)
}

// New builds a catalog from items and optional gift-roll weight overrides.
func New(items []domain.Item, giftWeights map[domain.Rarity]float64) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{
		items:       make(map[string]domain.Item, len(items)),
		byRarity:    make(map[domain.Rarity][]domain.Item),
		giftWeights: make(map[domain.Rarity]float64, len(DefaultGiftWeights)),
	}

	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog item with empty id")
		}
		if item.Rarity.Rank() < 0 {
			return nil, fmt.Errorf("catalog item %s has unknown rarity %q", item.ID, item.Rarity)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("catalog item %s has negative price %d", item.ID, item.Price)
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog item id %s", item.ID)
		}
		c.items[item.ID] = item
		c.byRarity[item.Rarity] = append(c.byRarity[item.Rarity], item)
	}

	// Deterministic pool order so injected random sources draw reproducibly
	for rarity := range c.byRarity {
		pool := c.byRarity[rarity]
		sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	}

	for rarity, weight := range DefaultGiftWeights {
		c.giftWeights[rarity] = weight
	}
	for rarity, weight := range giftWeights {
		if rarity.Rank() < 0 {
			return nil, fmt.Errorf("gift weight for unknown rarity %q", rarity)
		}
		if weight < 0 {
			return nil, fmt.Errorf("negative gift weight for rarity %q", rarity)
		}
		c.giftWeights[rarity] = weight
	}

	return c, nil
}

// Get returns the item for id.
func (c *Catalog) Get(id string) (domain.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns every catalog entry sorted by id.
func (c *Catalog) Items() []domain.Item {
	out := make([]domain.Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// RewardPool returns the non-gift items of the given rarity. Gift items never
// appear as rolled or trade-up rewards.
func (c *Catalog) RewardPool(rarity domain.Rarity) []domain.Item {
	pool := c.byRarity[rarity]
	out := make([]domain.Item, 0, len(pool))
	for _, item := range pool {
		if item.Gift {
			continue
		}
		out = append(out, item)
	}
	return out
}

// GiftWeights returns the rarity weights for gift-opening rolls.
func (c *Catalog) GiftWeights() map[domain.Rarity]float64 {
	return c.giftWeights
}
