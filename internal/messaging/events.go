package messaging

import (
	"log/slog"
	"time"

	"github.com/pixil98/go-workshop/internal/game"
	"github.com/pixil98/go-workshop/internal/geom"
)

// Subjects the scene publishes on. Presentation clients subscribe to these;
// the operator console additionally mirrors SubjectMessage and SubjectScore.
const (
	SubjectSpawn     = "scene.npc.spawn"
	SubjectMove      = "scene.npc.move"
	SubjectDespawn   = "scene.npc.despawn"
	SubjectEmote     = "scene.npc.emote"
	SubjectCountdown = "scene.npc.countdown"
	SubjectItem      = "scene.npc.item"
	SubjectConfetti  = "scene.confetti"
	SubjectMessage   = "scene.message"
	SubjectScore     = "scene.score"
)

type SpawnEvent struct {
	ID         uint64          `json:"id"`
	Race       game.Race       `json:"race"`
	Appearance game.Appearance `json:"appearance"`
	SpotID     int             `json:"spot_id"`
	Position   geom.Point3     `json:"position"`
	Facing     geom.Point3     `json:"facing"`
}

type MoveEvent struct {
	ID         uint64      `json:"id"`
	From       geom.Point3 `json:"from"`
	To         geom.Point3 `json:"to"`
	DurationMs int64       `json:"duration_ms"`
}

type DespawnEvent struct {
	ID uint64 `json:"id"`
}

type EmoteEvent struct {
	ID    uint64 `json:"id"`
	Emote string `json:"emote"`
}

type CountdownEvent struct {
	ID         uint64 `json:"id"`
	SpotID     int    `json:"spot_id"`
	DurationMs int64  `json:"duration_ms"`
	Visible    bool   `json:"visible"`
}

type ItemEvent struct {
	ID       uint64 `json:"id"`
	Instance string `json:"instance"`
	Type     string `json:"type"`
	Model    string `json:"model"`
}

type ConfettiEvent struct {
	SpotID int `json:"spot_id"`
}

type MessageEvent struct {
	Text string `json:"text"`
}

type ScoreEvent struct {
	Good     int  `json:"good"`
	Bad      int  `json:"bad"`
	GameOver bool `json:"game_over"`
	Won      bool `json:"won"`
}

// EventPublisher turns presenter calls into JSON events on the bus. Publish
// failures are logged and dropped; the scene never blocks on presentation.
type EventPublisher struct {
	server *NatsServer
}

func NewEventPublisher(server *NatsServer) *EventPublisher {
	return &EventPublisher{server: server}
}

func (p *EventPublisher) publish(subject string, v any) {
	if err := p.server.PublishJSON(subject, v); err != nil {
		slog.Warn("publishing scene event", "subject", subject, "error", err)
	}
}

func (p *EventPublisher) NPCSpawned(npc *game.NPC) {
	p.publish(SubjectSpawn, SpawnEvent{
		ID:         npc.ID,
		Race:       npc.Race,
		Appearance: npc.Appearance,
		SpotID:     npc.SpotID,
		Position:   npc.Position,
		Facing:     npc.Facing,
	})
}

func (p *EventPublisher) NPCMoved(npc *game.NPC, duration time.Duration) {
	p.publish(SubjectMove, MoveEvent{
		ID:         npc.ID,
		From:       npc.Position,
		To:         npc.Destination(),
		DurationMs: duration.Milliseconds(),
	})
}

func (p *EventPublisher) NPCDespawned(id uint64) {
	p.publish(SubjectDespawn, DespawnEvent{ID: id})
}

func (p *EventPublisher) PlayEmote(npcID uint64, emote string) {
	p.publish(SubjectEmote, EmoteEvent{ID: npcID, Emote: emote})
}

func (p *EventPublisher) ShowCountdown(npcID uint64, spotID int, d time.Duration) {
	p.publish(SubjectCountdown, CountdownEvent{
		ID:         npcID,
		SpotID:     spotID,
		DurationMs: d.Milliseconds(),
		Visible:    true,
	})
}

func (p *EventPublisher) HideCountdown(npcID uint64) {
	p.publish(SubjectCountdown, CountdownEvent{ID: npcID})
}

func (p *EventPublisher) AttachItem(npcID uint64, item *game.ItemInstance) {
	p.publish(SubjectItem, ItemEvent{
		ID:       npcID,
		Instance: item.ID,
		Type:     string(item.Type),
		Model:    item.Model,
	})
}

func (p *EventPublisher) ActivateConfetti(spotID int) {
	p.publish(SubjectConfetti, ConfettiEvent{SpotID: spotID})
}

func (p *EventPublisher) ShowMessage(text string) {
	p.publish(SubjectMessage, MessageEvent{Text: text})
}

func (p *EventPublisher) ScoreChanged(good, bad int, gameOver, won bool) {
	p.publish(SubjectScore, ScoreEvent{Good: good, Bad: bad, GameOver: gameOver, Won: won})
}
