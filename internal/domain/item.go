package domain

// Slot identifies a cosmetic wardrobe slot on the frog.
type Slot string

const (
	SlotHat        Slot = "hat"
	SlotGlasses    Slot = "glasses"
	SlotScarf      Slot = "scarf"
	SlotBackground Slot = "background"
	SlotBadge      Slot = "badge"
)

// Rarity is the item rarity tier. Tiers form a total order used for trade-up
// and drop weighting.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// rarityOrder maps each tier to its position in the total order.
var rarityOrder = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
}

// Rank returns the tier's position in the total order, -1 for unknown tiers.
func (r Rarity) Rank() int {
	if rank, ok := rarityOrder[r]; ok {
		return rank
	}
	return -1
}

// Next returns the next-higher rarity tier and false at the top of the order.
func (r Rarity) Next() (Rarity, bool) {
	switch r {
	case RarityCommon:
		return RarityUncommon, true
	case RarityUncommon:
		return RarityRare, true
	case RarityRare:
		return RarityEpic, true
	case RarityEpic:
		return RarityLegendary, true
	default:
		return r, false
	}
}

// Prev returns the next-lower rarity tier and false at the bottom of the order.
func (r Rarity) Prev() (Rarity, bool) {
	switch r {
	case RarityLegendary:
		return RarityEpic, true
	case RarityEpic:
		return RarityRare, true
	case RarityRare:
		return RarityUncommon, true
	case RarityUncommon:
		return RarityCommon, true
	default:
		return r, false
	}
}

// Item is a catalog entry. The catalog is static and shared read-only.
type Item struct {
	ID          string `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slot        Slot   `json:"slot,omitempty"`
	Rarity      Rarity `json:"rarity"`
	Price       int    `json:"price"`

	// Gift items open into a rolled reward instead of being worn. They are
	// excluded from trade-up payouts and from rolling themselves.
	Gift bool `json:"gift,omitempty"`
}

// SellPrice returns the flies credited when selling one unit.
func (i Item) SellPrice() int {
	return i.Price / 2
}
