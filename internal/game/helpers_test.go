package game

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/pixil98/go-workshop/internal/geom"
)

// recordingPresenter captures every presenter call for assertions.
type recordingPresenter struct {
	spawned         []uint64
	moved           int
	despawned       []uint64
	emotes          []string
	countdownShown  int
	countdownHidden int
	attached        []*ItemInstance
	confetti        []int
	messages        []string

	scoreCalls int
	lastGood   int
	lastBad    int
	lastOver   bool
	lastWon    bool
}

func (p *recordingPresenter) NPCSpawned(npc *NPC)             { p.spawned = append(p.spawned, npc.ID) }
func (p *recordingPresenter) NPCMoved(*NPC, time.Duration)    { p.moved++ }
func (p *recordingPresenter) NPCDespawned(id uint64)          { p.despawned = append(p.despawned, id) }
func (p *recordingPresenter) PlayEmote(_ uint64, emote string) { p.emotes = append(p.emotes, emote) }
func (p *recordingPresenter) ShowCountdown(uint64, int, time.Duration) {
	p.countdownShown++
}
func (p *recordingPresenter) HideCountdown(uint64) { p.countdownHidden++ }
func (p *recordingPresenter) AttachItem(_ uint64, item *ItemInstance) {
	p.attached = append(p.attached, item)
}
func (p *recordingPresenter) ActivateConfetti(spotID int) { p.confetti = append(p.confetti, spotID) }
func (p *recordingPresenter) ShowMessage(text string)     { p.messages = append(p.messages, text) }
func (p *recordingPresenter) ScoreChanged(good, bad int, gameOver, won bool) {
	p.scoreCalls++
	p.lastGood, p.lastBad, p.lastOver, p.lastWon = good, bad, gameOver, won
}

// stubEconomy is a minimal ItemEconomy with a scriptable hand.
type stubEconomy struct {
	held       ItemType
	hasHeld    bool
	failRemove bool

	removed   int
	created   []*ItemInstance
	destroyed []string
	live      map[string]bool
	nextID    int
}

func newStubEconomy() *stubEconomy {
	return &stubEconomy{live: map[string]bool{}}
}

func (e *stubEconomy) hold(t ItemType) {
	e.held = t
	e.hasHeld = true
}

func (e *stubEconomy) QueryHeldItem() (ItemType, bool) {
	return e.held, e.hasHeld
}

func (e *stubEconomy) RemoveHeldItem() bool {
	if e.failRemove || !e.hasHeld {
		return false
	}
	e.hasHeld = false
	e.removed++
	return true
}

func (e *stubEconomy) CreateItemAttachedToHand(npcID uint64, t ItemType, model string) *ItemInstance {
	e.nextID++
	inst := &ItemInstance{
		ID:    fmt.Sprintf("inst-%d", e.nextID),
		Type:  t,
		Model: model,
		Owner: OwnerNPCHand,
		NPCID: npcID,
	}
	e.created = append(e.created, inst)
	e.live[inst.ID] = true
	return inst
}

func (e *stubEconomy) DestroyInstance(id string) bool {
	if !e.live[id] {
		return false
	}
	delete(e.live, id)
	e.destroyed = append(e.destroyed, id)
	return true
}

// testSettings shortens every interval so lifecycle tests run in a handful of
// simulated seconds. One spot six meters from the near origin.
func testSettings() Settings {
	s := DefaultSettings()
	s.SpawnInterval = time.Second
	s.WalkSpeed = 2
	s.WaitTime = 5 * time.Second
	s.WaitTimeVariation = 0
	s.Origins = [2]geom.Point3{{Z: 6}, {Z: 100}}
	s.Spots = []geom.Point3{{}}
	return s
}

type testScene struct {
	spawner   *NPCSpawner
	presenter *recordingPresenter
	economy   *stubEconomy
	score     *Scoreboard
}

func newTestScene(settings Settings) *testScene {
	p := &recordingPresenter{}
	e := newStubEconomy()
	score := NewScoreboard(settings.WinThreshold, settings.LoseThreshold, p)
	s := NewNPCSpawner(settings, DefaultEmoteSets(), e, score, p,
		WithRand(rand.New(rand.NewSource(7))))
	return &testScene{spawner: s, presenter: p, economy: e, score: score}
}

const testStep = 50 * time.Millisecond

// run advances the scene by d in fixed steps.
func (ts *testScene) run(t *testing.T, d time.Duration) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < d; elapsed += testStep {
		if err := ts.spawner.Tick(context.Background(), testStep); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
	}
}

// runUntil steps the scene until cond holds, failing after maxSim simulated
// time.
func (ts *testScene) runUntil(t *testing.T, maxSim time.Duration, what string, cond func() bool) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < maxSim; elapsed += testStep {
		if cond() {
			return
		}
		if err := ts.spawner.Tick(context.Background(), testStep); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
	}
	if !cond() {
		t.Fatalf("timed out waiting for %s", what)
	}
}

// firstNPC returns the lowest-id live visitor.
func (ts *testScene) firstNPC() *NPC {
	var best *NPC
	for _, npc := range ts.spawner.npcs {
		if best == nil || npc.ID < best.ID {
			best = npc
		}
	}
	return best
}
