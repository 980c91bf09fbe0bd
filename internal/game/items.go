package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-workshop/internal/storage"
)

// ItemType identifies a kind of deliverable item (e.g. "bread", "mead").
type ItemType string

// ItemOwner says whose hand, if any, an item instance is attached to.
type ItemOwner int

const (
	OwnerWorld ItemOwner = iota
	OwnerPlayerHand
	OwnerNPCHand
)

// ItemSpec defines a type of item loaded from asset files.
// Item IDs double as the ItemType (e.g. "bread").
type ItemSpec struct {
	// DisplayName is used in messages (e.g. "a loaf of elven bread")
	DisplayName string `json:"display_name"`

	// Model is the visual model id the presentation layer attaches to a hand
	Model string `json:"model"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *ItemSpec) Validate() error {
	el := errors.NewErrorList()
	if i.DisplayName == "" {
		el.Add(fmt.Errorf("item display name is required"))
	}
	if i.Model == "" {
		el.Add(fmt.Errorf("item model is required"))
	}
	return el.Err()
}

// ItemInstance is a single live item entity. An instance is attached to at
// most one hand; moving an item between hands destroys the instance and
// creates a fresh one at the destination. That destroy-and-recreate handoff
// (and its one-instant gap where neither instance exists) is load-bearing
// for the presentation layer and must not be collapsed into a reparent.
type ItemInstance struct {
	ID    string
	Type  ItemType
	Model string
	Owner ItemOwner

	// NPCID is set when Owner is OwnerNPCHand.
	NPCID uint64
}

// ItemEconomy is the boundary the scene logic uses to ask about and move
// items. The concrete implementation owns every live instance.
type ItemEconomy interface {
	// QueryHeldItem reports what the player currently holds, if anything.
	QueryHeldItem() (ItemType, bool)

	// RemoveHeldItem destroys the player's held item. Returns false if the
	// player held nothing.
	RemoveHeldItem() bool

	// CreateItemAttachedToHand creates a fresh instance of the given type in
	// a visitor's hand, mirroring the given visual model.
	CreateItemAttachedToHand(npcID uint64, t ItemType, model string) *ItemInstance

	// DestroyInstance removes an instance by id. Destroying an instance that
	// no longer exists is a no-op returning false.
	DestroyInstance(id string) bool
}

// HandEconomy is the in-memory item economy: one player hand slot plus the
// set of live instances. The stations that produce items and the console
// both feed the hand through GiveToPlayer.
type HandEconomy struct {
	mu      sync.Mutex
	catalog storage.Storer[*ItemSpec]

	playerHand *ItemInstance
	instances  map[string]*ItemInstance
}

func NewHandEconomy(catalog storage.Storer[*ItemSpec]) *HandEconomy {
	return &HandEconomy{
		catalog:   catalog,
		instances: map[string]*ItemInstance{},
	}
}

// Catalog returns the item definition store.
func (h *HandEconomy) Catalog() storage.Storer[*ItemSpec] {
	return h.catalog
}

// GiveToPlayer puts a fresh instance of the given type in the player's hand,
// destroying whatever was held before. Fails if the type is not in the
// catalog.
func (h *HandEconomy) GiveToPlayer(t ItemType) (*ItemInstance, error) {
	spec := h.catalog.Get(string(t))
	if spec == nil {
		return nil, fmt.Errorf("unknown item type %q", t)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.playerHand != nil {
		delete(h.instances, h.playerHand.ID)
		h.playerHand = nil
	}

	inst := &ItemInstance{
		ID:    uuid.New().String(),
		Type:  t,
		Model: spec.Model,
		Owner: OwnerPlayerHand,
	}
	h.instances[inst.ID] = inst
	h.playerHand = inst
	return inst, nil
}

func (h *HandEconomy) QueryHeldItem() (ItemType, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.playerHand == nil {
		return "", false
	}
	return h.playerHand.Type, true
}

// HeldModel returns the visual model of the held item, if any.
func (h *HandEconomy) HeldModel() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.playerHand == nil {
		return "", false
	}
	return h.playerHand.Model, true
}

func (h *HandEconomy) RemoveHeldItem() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.playerHand == nil {
		return false
	}
	delete(h.instances, h.playerHand.ID)
	h.playerHand = nil
	return true
}

func (h *HandEconomy) CreateItemAttachedToHand(npcID uint64, t ItemType, model string) *ItemInstance {
	h.mu.Lock()
	defer h.mu.Unlock()

	inst := &ItemInstance{
		ID:    uuid.New().String(),
		Type:  t,
		Model: model,
		Owner: OwnerNPCHand,
		NPCID: npcID,
	}
	h.instances[inst.ID] = inst
	return inst
}

func (h *HandEconomy) DestroyInstance(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.instances[id]; !ok {
		return false
	}
	delete(h.instances, id)
	if h.playerHand != nil && h.playerHand.ID == id {
		h.playerHand = nil
	}
	return true
}

// InstanceCount returns the number of live item instances.
func (h *HandEconomy) InstanceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.instances)
}
