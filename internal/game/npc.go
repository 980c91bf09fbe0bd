package game

import (
	"math/rand"
	"time"

	"github.com/pixil98/go-workshop/internal/geom"
)

// Race determines which item type a visitor expects to be handed.
// Everything else about a race is cosmetic.
type Race string

const (
	RaceElf Race = "elf"
	RaceOrc Race = "orc"
)

// NPCState is a visitor's position in its lifecycle.
type NPCState int

const (
	StateWalkingIn NPCState = iota
	StateArrived
	StateWaiting
	StateResolving
	StateWalkingOut
	StateDespawned
)

func (s NPCState) String() string {
	switch s {
	case StateWalkingIn:
		return "walking-in"
	case StateArrived:
		return "arrived"
	case StateWaiting:
		return "waiting"
	case StateResolving:
		return "resolving"
	case StateWalkingOut:
		return "walking-out"
	case StateDespawned:
		return "despawned"
	default:
		return "unknown"
	}
}

// Outcome is the verdict of a visitor's stay.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeWrong
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// Pleased reports whether the visitor leaves happy. Only a correct delivery
// earns the pleased goodbye.
func (o Outcome) Pleased() bool {
	return o == OutcomeCorrect
}

// Appearance is the cosmetic roll made at spawn time. It rides along on the
// spawn event for the presentation layer and has no gameplay meaning.
type Appearance struct {
	SkinColor string `json:"skin_color"`
	EyeColor  string `json:"eye_color"`
	HairColor string `json:"hair_color"`
	BodyShape string `json:"body_shape"`
	Clothing  string `json:"clothing"`
	HairStyle string `json:"hair_style"`
}

var (
	skinColors = map[Race][]string{
		RaceElf: {"pale", "fair", "tan"},
		RaceOrc: {"green", "gray-green", "olive"},
	}
	eyeColors  = []string{"amber", "blue", "green", "brown"}
	hairColors = []string{"black", "brown", "silver", "red"}
	bodyShapes = []string{"slim", "stocky", "broad"}
	clothings  = []string{"traveler", "laborer", "merchant"}
	hairStyles = []string{"short", "long", "braided", "bald"}
)

// RollRace picks a race uniformly at random.
func RollRace(rng *rand.Rand) Race {
	if rng.Intn(2) == 0 {
		return RaceElf
	}
	return RaceOrc
}

// RollAppearance picks a random cosmetic set appropriate for the race.
func RollAppearance(rng *rand.Rand, race Race) Appearance {
	pick := func(opts []string) string { return opts[rng.Intn(len(opts))] }
	return Appearance{
		SkinColor: pick(skinColors[race]),
		EyeColor:  pick(eyeColors),
		HairColor: pick(hairColors),
		BodyShape: pick(bodyShapes),
		Clothing:  pick(clothings),
		HairStyle: pick(hairStyles),
	}
}

// NPC is one visitor's full record: identity, assignment, and the mutable
// machine state its transitions write. All mutation happens under the
// spawner's lock on the frame loop.
type NPC struct {
	ID         uint64
	Race       Race
	Appearance Appearance

	SpotID int
	Origin geom.Point3
	Target geom.Point3

	Position geom.Point3
	Facing   geom.Point3

	State   NPCState
	Outcome Outcome

	// received latches on the first successful delivery trigger; a second
	// trigger in the same instant must be a no-op.
	received bool
	// refusing latches when the countdown has fired or the exit sequence has
	// begun; a delivery racing the timer loses once this is set.
	refusing bool

	heldItem *ItemInstance

	move      *geom.Tween
	waitTimer Handle
	deadline  time.Duration
}

// Interactive reports whether a delivery attempt can currently reach this
// visitor.
func (n *NPC) Interactive() bool {
	return n.State == StateWaiting && !n.refusing && !n.received
}

// HeldItem returns the item attached to the visitor's hand, if any.
func (n *NPC) HeldItem() *ItemInstance {
	return n.heldItem
}

// Destination returns where the visitor's current move ends, or its present
// position when it is standing still.
func (n *NPC) Destination() geom.Point3 {
	if n.move != nil {
		return n.move.Target()
	}
	return n.Position
}
