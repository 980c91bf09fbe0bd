package game

import (
	"math/rand"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestEmoteSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		set    string
		expErr bool
	}{
		"arrival":     {set: EmoteSetArrival},
		"pleased":     {set: EmoteSetPleased},
		"unimpressed": {set: EmoteSetUnimpressed},
		"empty":       {set: "", expErr: true},
		"unknown":     {set: "angry", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			spec := &EmoteSpec{Set: tt.set}
			err := spec.Validate()
			if tt.expErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEmoteSets_Validate(t *testing.T) {
	sets := DefaultEmoteSets()
	if err := sets.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	sets.Pleased = nil
	if err := sets.Validate(); err == nil {
		t.Error("expected error for empty pleased pool")
	}
}

func TestEmoteSets_PickGoodbye(t *testing.T) {
	sets := EmoteSets{
		Arrival:     []string{"wave"},
		Pleased:     []string{"cheer"},
		Unimpressed: []string{"scoff"},
	}
	rng := rand.New(rand.NewSource(1))

	testutil.AssertEqual(t, "correct gets pleased", sets.PickGoodbye(rng, OutcomeCorrect), "cheer")
	testutil.AssertEqual(t, "wrong gets unimpressed", sets.PickGoodbye(rng, OutcomeWrong), "scoff")
	testutil.AssertEqual(t, "timeout gets unimpressed", sets.PickGoodbye(rng, OutcomeTimeout), "scoff")
	testutil.AssertEqual(t, "arrival pick", sets.PickArrival(rng), "wave")
}
