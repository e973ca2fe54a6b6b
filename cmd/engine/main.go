package main

import (
	"context"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kavinmb/fleet-telemetry/internal/broadcast"
	"github.com/kavinmb/fleet-telemetry/internal/config"
	"github.com/kavinmb/fleet-telemetry/internal/db"
	"github.com/kavinmb/fleet-telemetry/internal/routing"
	"github.com/kavinmb/fleet-telemetry/internal/sim"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("connected to MongoDB")

	collections := db.NewCollections(client, cfg.MongoDB)

	hub := broadcast.NewHub()
	go hub.Run(ctx)

	updates := broadcast.UpdateFanout{hub}
	events := broadcast.EventFanout{hub}

	// MQTT is optional: without a broker the engine still serves websocket
	// subscribers.
	if mq, err := broadcast.NewMQTTPublisher(cfg.MQTTBroker, "fleet-telemetry-engine"); err != nil {
		log.WithError(err).Warn("MQTT unavailable, continuing without it")
	} else {
		defer mq.Close()
		updates = append(updates, mq)
		events = append(events, mq)
		log.WithField("broker", cfg.MQTTBroker).Info("connected to MQTT broker")
	}

	scheduler := sim.New(sim.Config{
		TickInterval:     cfg.TickInterval,
		PersistInterval:  cfg.PersistInterval,
		VisualMultiplier: cfg.VisualMultiplier,
	}, sim.Deps{
		Trips:       collections.Trips,
		Vehicles:    collections.Vehicles,
		Drivers:     collections.Drivers,
		Performance: collections.Performance,
		Alerts:      collections.Alerts,
		Routes:      routing.NewOSRMClient(cfg.OSRMURL),
		Broadcast:   updates,
		Events:      events,
	}, rand.New(rand.NewSource(time.Now().UnixNano())))

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("websocket listener started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("websocket listener failed")
		}
	}()

	go scheduler.Run(ctx)

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("websocket listener shutdown failed")
	}
}
