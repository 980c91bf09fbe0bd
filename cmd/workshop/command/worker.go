package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-workshop/internal/console"
	"github.com/pixil98/go-workshop/internal/driver"
	"github.com/pixil98/go-workshop/internal/game"
	"github.com/pixil98/go-workshop/internal/listener"
	"github.com/pixil98/go-workshop/internal/messaging"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Create the nats server
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	presenter := messaging.NewEventPublisher(natsServer)

	// Load the asset catalogs
	itemStore, err := cfg.Storage.BuildItemStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	emoteSets, err := cfg.Storage.BuildEmoteSets()
	if err != nil {
		return nil, fmt.Errorf("loading emote sets: %w", err)
	}

	// Build the scene
	settings, err := cfg.Game.BuildSettings()
	if err != nil {
		return nil, fmt.Errorf("building game settings: %w", err)
	}
	economy := game.NewHandEconomy(itemStore)
	score := game.NewScoreboard(settings.WinThreshold, settings.LoseThreshold, presenter)
	spawner := game.NewNPCSpawner(settings, emoteSets, economy, score, presenter)

	// Create the operator console and listeners
	cns := console.New(spawner, economy, score, natsServer)
	cm := listener.NewConnectionManager(cns)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// Setup the frame loop
	var opts []driver.SceneDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		opts = append(opts, driver.WithTickLength(d))
	}
	sceneDriver := driver.NewSceneDriver([]driver.Manager{
		spawner,
	}, opts...)

	// Create a worker list
	return service.WorkerList{
		"nats":      natsServer,
		"driver":    sceneDriver,
		"listeners": &listeners,
	}, nil
}
