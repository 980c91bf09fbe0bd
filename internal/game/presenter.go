package game

import "time"

// Presenter is the one-way surface the scene logic calls into for everything
// visual or audible. The real implementation publishes events for the 3D
// presentation; tests use NopPresenter or a recorder.
type Presenter interface {
	// NPCSpawned announces a new visitor with its cosmetic roll.
	NPCSpawned(npc *NPC)

	// NPCMoved announces the start of a linear move so the presentation can
	// run its own tween in parallel.
	NPCMoved(npc *NPC, duration time.Duration)

	// NPCDespawned tells the presentation to destroy the visitor's avatar.
	NPCDespawned(id uint64)

	// PlayEmote plays a named reaction animation on a visitor.
	PlayEmote(npcID uint64, emote string)

	// ShowCountdown attaches a linearly depleting patience indicator.
	ShowCountdown(npcID uint64, spotID int, d time.Duration)

	// HideCountdown removes the indicator. Hiding an absent indicator is a
	// no-op.
	HideCountdown(npcID uint64)

	// AttachItem shows an item model in a visitor's hand.
	AttachItem(npcID uint64, item *ItemInstance)

	// ActivateConfetti fires the celebration effect at a spot.
	ActivateConfetti(spotID int)

	// ShowMessage puts a one-shot banner on screen.
	ShowMessage(text string)

	// ScoreChanged reports the counters after every scoring event.
	ScoreChanged(good, bad int, gameOver, won bool)
}

// NopPresenter discards every call.
type NopPresenter struct{}

func (NopPresenter) NPCSpawned(*NPC)                          {}
func (NopPresenter) NPCMoved(*NPC, time.Duration)             {}
func (NopPresenter) NPCDespawned(uint64)                      {}
func (NopPresenter) PlayEmote(uint64, string)                 {}
func (NopPresenter) ShowCountdown(uint64, int, time.Duration) {}
func (NopPresenter) HideCountdown(uint64)                     {}
func (NopPresenter) AttachItem(uint64, *ItemInstance)         {}
func (NopPresenter) ActivateConfetti(int)                     {}
func (NopPresenter) ShowMessage(string)                       {}
func (NopPresenter) ScoreChanged(int, int, bool, bool)        {}

