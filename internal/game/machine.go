package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-workshop/internal/geom"
)

const (
	// arrivalEpsilon is how close a moving visitor must get to its target
	// before the position poll declares arrival. The tween clamps at the
	// target, so this only pads float error and any overshooting primitive
	// swapped in later.
	arrivalEpsilon = 0.1

	// settleDistance is the small supplemental step toward the viewer a
	// visitor takes after reaching its spot. Cosmetic staging; the visitor
	// is not interactive until it finishes.
	settleDistance = 0.5

	// settleBuffer pads each staged animation so the presentation layer has
	// a frame to catch up before the emote plays.
	settleBuffer = 100 * time.Millisecond

	// emoteHold is how long arrival and goodbye animations are held.
	emoteHold = 2 * time.Second
)

// viewerOffset points toward the camera side of the scene.
var viewerOffset = geom.Point3{Z: settleDistance}

// beginWalkIn starts the visitor's line toward its spot and arms the
// arrival poll. Callers hold the spawner lock.
func (s *NPCSpawner) beginWalkIn(npc *NPC) {
	npc.State = StateWalkingIn
	npc.move = geom.NewTween(npc.Origin, npc.Target, s.settings.WalkSpeed)
	s.presenter.NPCMoved(npc, npc.Origin.TravelTime(npc.Target, s.settings.WalkSpeed))

	s.sched.Poll(npc.ID,
		func() bool { return npc.Position.Dist(npc.Target) < arrivalEpsilon },
		func() { s.handleArrival(npc) },
	)
}

// handleArrival stages the settle step and the arrival emote, then hands
// off to beginWaiting.
func (s *NPCSpawner) handleArrival(npc *NPC) {
	npc.State = StateArrived

	settle := npc.Target.Add(viewerOffset)
	npc.Facing = settle.Sub(npc.Position).Norm()
	npc.move = geom.NewTween(npc.Position, settle, s.settings.WalkSpeed)

	stageTime := npc.Position.TravelTime(settle, s.settings.WalkSpeed) + settleBuffer
	s.presenter.NPCMoved(npc, stageTime)

	s.sched.After(npc.ID, stageTime, func() {
		s.presenter.PlayEmote(npc.ID, s.emotes.PickArrival(s.rng))
		s.sched.After(npc.ID, emoteHold, func() {
			s.beginWaiting(npc)
		})
	})
}

// beginWaiting makes the visitor interactive and starts its patience
// countdown. The deadline is re-rolled per visitor so simultaneous arrivals
// do not expire in lockstep.
func (s *NPCSpawner) beginWaiting(npc *NPC) {
	npc.State = StateWaiting
	npc.move = nil

	deadline := s.settings.WaitTime
	if v := s.settings.WaitTimeVariation; v > 0 {
		deadline += time.Duration(s.rng.Int63n(int64(2*v))) - v
	}
	if deadline < time.Second {
		deadline = time.Second
	}
	npc.deadline = deadline

	s.presenter.ShowCountdown(npc.ID, npc.SpotID, deadline)
	npc.waitTimer = s.sched.After(npc.ID, deadline, func() {
		s.expireWait(npc)
	})
}

// expireWait fires when the countdown wins the race against the player.
func (s *NPCSpawner) expireWait(npc *NPC) {
	if npc.State != StateWaiting || npc.received {
		// Stale expiry; the delivery path cancels this timer, so reaching
		// here means the visitor is already past waiting. Do nothing.
		slog.Warn("stale wait expiry", "npc", npc.ID, "state", npc.State.String())
		return
	}

	// Tear down the interaction surface before anything else so a delivery
	// landing in this same instant cannot slip through.
	npc.refusing = true
	s.presenter.HideCountdown(npc.ID)
	s.presenter.ShowMessage("A visitor gave up waiting and left unhappy.")

	slog.Info("visitor patience expired", "npc", npc.ID, "spot", npc.SpotID)
	s.resolve(npc, OutcomeTimeout)
}

// Deliver hands the player's held item to the visitor. It is the single
// interaction surface the input boundary may call, valid only while the
// visitor is Waiting. The first successful trigger wins; everything after
// it, including a racing countdown, is a no-op.
func (s *NPCSpawner) Deliver(id uint64) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	npc, ok := s.npcs[id]
	if !ok {
		return OutcomeNone, ErrNoSuchNPC
	}
	if !npc.Interactive() {
		return OutcomeNone, ErrNotWaiting
	}

	held, any := s.items.QueryHeldItem()
	if !any {
		s.presenter.ShowMessage("You have nothing to give.")
		return OutcomeNone, ErrNothingHeld
	}

	npc.received = true

	// Mirror the held item's visual before it is destroyed.
	model := string(held)
	if hm, ok := s.items.(interface{ HeldModel() (string, bool) }); ok {
		if m, ok := hm.HeldModel(); ok {
			model = m
		}
	}

	if !s.items.RemoveHeldItem() {
		// Abort with no partial resolution: unlatch and leave the countdown
		// running.
		npc.received = false
		s.presenter.ShowMessage("The item slips from your grasp. Try again.")
		slog.Warn("held item removal failed", "npc", npc.ID)
		return OutcomeNone, ErrItemRemoval
	}

	s.sched.Cancel(npc.waitTimer)
	s.presenter.HideCountdown(npc.ID)

	verdict := OutcomeWrong
	if held == s.settings.ExpectedItems[npc.Race] {
		verdict = OutcomeCorrect
	}

	// Destroy-and-recreate handoff: the player's instance is already gone
	// and a fresh one appears in the visitor's hand.
	npc.heldItem = s.items.CreateItemAttachedToHand(npc.ID, held, model)
	s.presenter.AttachItem(npc.ID, npc.heldItem)

	slog.Info("delivery", "npc", npc.ID, "item", held, "verdict", verdict.String())
	s.resolve(npc, verdict)
	return verdict, nil
}

// resolve fires the outcome's side effects exactly once and then starts the
// exit sequence. The walk-out is guaranteed even if scoring panics; a
// visitor must never get stuck at its spot.
func (s *NPCSpawner) resolve(npc *NPC, verdict Outcome) {
	npc.State = StateResolving
	defer s.beginWalkOut(npc)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("delivery resolution failed", "npc", npc.ID, "panic", r)
			if npc.Outcome == OutcomeNone {
				npc.Outcome = OutcomeWrong
			}
		}
	}()

	npc.Outcome = verdict

	switch verdict {
	case OutcomeCorrect:
		s.score.IncrementGood()
		s.presenter.ActivateConfetti(npc.SpotID)
	case OutcomeWrong:
		s.score.IncrementBad()
		s.presenter.ShowMessage(fmt.Sprintf("The %s wanted something else.", npc.Race))
	case OutcomeTimeout:
		s.score.IncrementBad()
	}
}

// beginWalkOut releases the spot, stages the goodbye, and sends the visitor
// back to its origin. The spot is freed here, at the start of the exit, so
// the spawner can admit a replacement while this visitor is still walking
// away.
func (s *NPCSpawner) beginWalkOut(npc *NPC) {
	npc.State = StateWalkingOut
	npc.refusing = true
	npc.move = nil

	if err := s.spots.Free(npc.SpotID); err != nil {
		slog.Warn("releasing spot on walk-out", "npc", npc.ID, "spot", npc.SpotID, "error", err)
	}
	s.presenter.HideCountdown(npc.ID)

	goodbye := s.emotes.PickGoodbye(s.rng, npc.Outcome)
	s.sched.After(npc.ID, settleBuffer, func() {
		s.presenter.PlayEmote(npc.ID, goodbye)
	})
	s.sched.After(npc.ID, settleBuffer+emoteHold, func() {
		npc.Facing = npc.Origin.Sub(npc.Position).Norm()
		npc.move = geom.NewTween(npc.Position, npc.Origin, s.settings.WalkSpeed)
		s.presenter.NPCMoved(npc, npc.Position.TravelTime(npc.Origin, s.settings.WalkSpeed))

		s.sched.Poll(npc.ID,
			func() bool { return npc.Position.Dist(npc.Origin) < arrivalEpsilon },
			func() { s.despawn(npc) },
		)
	})
}

// despawn is the terminal teardown. Every resource keyed to the visitor is
// released exactly once regardless of which path got it here: the held-item
// destroy is a no-op if the instance is already gone, and cancelling the
// owner clears any timer that has not fired.
func (s *NPCSpawner) despawn(npc *NPC) {
	npc.State = StateDespawned

	if npc.heldItem != nil {
		s.items.DestroyInstance(npc.heldItem.ID)
		npc.heldItem = nil
	}

	s.presenter.NPCDespawned(npc.ID)
	delete(s.npcs, npc.ID)
	s.sched.CancelOwner(npc.ID)

	slog.Info("visitor despawned", "npc", npc.ID, "outcome", npc.Outcome.String())
}
