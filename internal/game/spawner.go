package game

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/pixil98/go-workshop/internal/geom"
)

// NPCSpawner owns the waiting spots, the live visitor registry, and the
// spawn cadence. It is the single entry point for everything that mutates
// scene state: the frame loop comes in through Tick, player interaction
// through Deliver, and session control through Stop/Restart/RemoveAll.
//
// One lock guards all of it. Visitor state machines only ever run inside
// Tick (via the scheduler) or inside Deliver, so transitions cannot
// interleave.
type NPCSpawner struct {
	mu sync.Mutex

	settings  Settings
	emotes    EmoteSets
	rng       *rand.Rand
	spots     *SpotRegistry
	sched     *Scheduler
	items     ItemEconomy
	score     *Scoreboard
	presenter Presenter

	npcs       map[uint64]*NPC
	nextID     uint64
	spawnIndex uint64
	elapsed    time.Duration
	spawning   bool
}

type SpawnerOpt func(*NPCSpawner)

// WithRand replaces the spawner's randomness source. Tests use a seeded
// source to make race rolls and patience deadlines deterministic.
func WithRand(rng *rand.Rand) SpawnerOpt {
	return func(s *NPCSpawner) {
		s.rng = rng
	}
}

func NewNPCSpawner(settings Settings, emotes EmoteSets, items ItemEconomy, score *Scoreboard, p Presenter, opts ...SpawnerOpt) *NPCSpawner {
	s := &NPCSpawner{
		settings:  settings,
		emotes:    emotes,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		spots:     NewSpotRegistry(settings.Spots),
		sched:     NewScheduler(),
		items:     items,
		score:     score,
		presenter: p,
		npcs:      map[uint64]*NPC{},
		spawning:  true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Tick advances the scene by dt: visitor movement first, then scheduled
// timers and polls, then the spawn cadence. Anomalies are logged and
// degraded; Tick never fails the frame loop.
func (s *NPCSpawner) Tick(ctx context.Context, dt time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, npc := range s.npcs {
		if npc.move != nil {
			npc.Position = npc.move.Advance(dt)
			if npc.move.Done() {
				npc.Position = npc.move.Target()
				npc.move = nil
			}
		}
	}

	s.sched.Advance(dt)

	s.elapsed += dt
	if !s.spawning {
		return nil
	}
	if s.elapsed < time.Duration(s.spawnIndex+1)*s.settings.SpawnInterval {
		return nil
	}

	// The index tracks wall-clock slots, not completed spawns: a slot missed
	// because every spot was taken is simply gone, so freed spots never cause
	// a catch-up burst.
	s.spawnIndex = uint64(s.elapsed / s.settings.SpawnInterval)

	if s.score != nil && s.score.GameOver() {
		return nil
	}

	spot, ok := s.spots.FreeSpot()
	if !ok {
		return nil
	}
	s.spawnOne(spot)
	return nil
}

func (s *NPCSpawner) spawnOne(spot *Spot) {
	if err := s.spots.Occupy(spot.ID); err != nil {
		// Fail closed: never spawn into a spot we could not claim.
		slog.Warn("spawn skipped", "spot", spot.ID, "error", err)
		return
	}

	s.nextID++
	race := RollRace(s.rng)
	npc := &NPC{
		ID:         s.nextID,
		Race:       race,
		Appearance: RollAppearance(s.rng, race),
		SpotID:     spot.ID,
		Origin:     s.closestOrigin(spot),
		Target:     spot.Position,
	}
	npc.Position = npc.Origin
	npc.Facing = npc.Target.Sub(npc.Origin).Norm()

	s.npcs[npc.ID] = npc
	s.presenter.NPCSpawned(npc)
	s.beginWalkIn(npc)

	slog.Info("visitor spawned", "npc", npc.ID, "race", npc.Race, "spot", spot.ID)
}

func (s *NPCSpawner) closestOrigin(spot *Spot) geom.Point3 {
	best := s.settings.Origins[0]
	if s.settings.Origins[1].Dist(spot.Position) < best.Dist(spot.Position) {
		best = s.settings.Origins[1]
	}
	return best
}

// StopSpawning pauses the cadence. Live visitors are unaffected.
func (s *NPCSpawner) StopSpawning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawning = false
}

// RestartSpawning resumes the cadence from a clean slate: spawn index and
// elapsed time reset and every spot is force-freed. Live visitors are NOT
// removed; callers wanting a hard reset pair this with RemoveAllNPCs.
func (s *NPCSpawner) RestartSpawning() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spawning = true
	s.spawnIndex = 0
	s.elapsed = 0
	s.spots.FreeAll()
}

// RemoveAllNPCs destroys every live visitor immediately, bypassing the
// normal exit sequence: no goodbye, no walk-out, no scoring. All spots are
// freed and all per-visitor timers cancelled.
func (s *NPCSpawner) RemoveAllNPCs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, npc := range s.npcs {
		npc.State = StateDespawned
		if npc.heldItem != nil {
			s.items.DestroyInstance(npc.heldItem.ID)
			npc.heldItem = nil
		}
		s.sched.CancelOwner(id)
		s.presenter.NPCDespawned(id)
	}
	s.npcs = map[uint64]*NPC{}
	s.spots.FreeAll()
}

// Destroy tears the spawner down for good.
func (s *NPCSpawner) Destroy() {
	s.StopSpawning()
	s.RemoveAllNPCs()
}

// Spawning reports whether the cadence is running.
func (s *NPCSpawner) Spawning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawning
}

// NPCInfo is a read-only snapshot of one visitor for status displays.
type NPCInfo struct {
	ID      uint64
	Race    Race
	State   NPCState
	Outcome Outcome
	SpotID  int

	// Patience is the time left on the countdown while the visitor waits.
	Patience    time.Duration
	HasPatience bool
}

// Visitors returns a snapshot of every live visitor, ordered by id.
func (s *NPCSpawner) Visitors() []NPCInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]NPCInfo, 0, len(s.npcs))
	for _, npc := range s.npcs {
		info := NPCInfo{
			ID:      npc.ID,
			Race:    npc.Race,
			State:   npc.State,
			Outcome: npc.Outcome,
			SpotID:  npc.SpotID,
		}
		if npc.State == StateWaiting {
			info.Patience, info.HasPatience = s.sched.Remaining(npc.waitTimer)
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// SpotInfo is a read-only snapshot of one waiting spot.
type SpotInfo struct {
	ID       int
	Occupied bool
}

// SpotStates returns the occupancy of every spot in id order.
func (s *NPCSpawner) SpotStates() []SpotInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]SpotInfo, 0, len(s.spots.All()))
	for _, spot := range s.spots.All() {
		infos = append(infos, SpotInfo{ID: spot.ID, Occupied: spot.Occupied()})
	}
	return infos
}
