package game

import (
	"fmt"
	"math/rand"

	"github.com/pixil98/go-errors"
)

// Emote set names as they appear in asset files.
const (
	EmoteSetArrival     = "arrival"
	EmoteSetPleased     = "pleased"
	EmoteSetUnimpressed = "unimpressed"
)

// EmoteSpec defines one reaction animation loaded from asset files.
// The asset id is the animation name the presentation layer plays.
type EmoteSpec struct {
	// Set is which pool the emote belongs to: arrival, pleased, or unimpressed.
	Set string `json:"set"`
}

// Validate satisfies storage.ValidatingSpec.
func (e *EmoteSpec) Validate() error {
	el := errors.NewErrorList()
	switch e.Set {
	case EmoteSetArrival, EmoteSetPleased, EmoteSetUnimpressed:
	case "":
		el.Add(fmt.Errorf("emote set is required"))
	default:
		el.Add(fmt.Errorf("unknown emote set %q", e.Set))
	}
	return el.Err()
}

// EmoteSets holds the three animation pools the machine draws from.
type EmoteSets struct {
	Arrival     []string
	Pleased     []string
	Unimpressed []string
}

// DefaultEmoteSets returns the animation names shipped with the scene.
func DefaultEmoteSets() EmoteSets {
	return EmoteSets{
		Arrival:     []string{"wave", "nod", "stretch"},
		Pleased:     []string{"cheer", "clap", "bow"},
		Unimpressed: []string{"scoff", "shrug", "headshake"},
	}
}

// Validate checks that every pool has at least one animation.
func (e *EmoteSets) Validate() error {
	el := errors.NewErrorList()
	if len(e.Arrival) == 0 {
		el.Add(fmt.Errorf("arrival emote set is empty"))
	}
	if len(e.Pleased) == 0 {
		el.Add(fmt.Errorf("pleased emote set is empty"))
	}
	if len(e.Unimpressed) == 0 {
		el.Add(fmt.Errorf("unimpressed emote set is empty"))
	}
	return el.Err()
}

// PickArrival returns a random arrival animation.
func (e *EmoteSets) PickArrival(rng *rand.Rand) string {
	return e.Arrival[rng.Intn(len(e.Arrival))]
}

// PickGoodbye returns a random goodbye animation matching the outcome's
// polarity.
func (e *EmoteSets) PickGoodbye(rng *rand.Rand, o Outcome) string {
	if o.Pleased() {
		return e.Pleased[rng.Intn(len(e.Pleased))]
	}
	return e.Unimpressed[rng.Intn(len(e.Unimpressed))]
}
