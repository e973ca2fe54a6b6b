package sim

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kavinmb/fleet-telemetry/internal/geo"
	"github.com/kavinmb/fleet-telemetry/internal/models"
	"github.com/kavinmb/fleet-telemetry/internal/scoring"
)

// Config holds the scheduler's timing and tuning knobs.
type Config struct {
	// TickInterval is the simulation cadence.
	TickInterval time.Duration

	// PersistInterval is the coarser cadence at which vehicle positions are
	// written to storage, to bound write amplification.
	PersistInterval time.Duration

	// VisualMultiplier scales per-tick travel distance.
	VisualMultiplier float64
}

// DefaultConfig returns the production cadence: 1 s ticks, 5 s vehicle
// persistence.
func DefaultConfig() Config {
	return Config{
		TickInterval:     time.Second,
		PersistInterval:  5 * time.Second,
		VisualMultiplier: DefaultVisualMultiplier,
	}
}

// Deps bundles the scheduler's external collaborators.
type Deps struct {
	Trips       TripStore
	Vehicles    VehicleStore
	Drivers     DriverStore
	Performance PerformanceStore
	Alerts      AlertStore
	Routes      RouteProvider
	Broadcast   Broadcaster
	Events      AlertSink
}

// Scheduler drives every active trip through the simulation pipeline once
// per tick: lifecycle transitions, movement, ETA, behaviour detection,
// scoring, persistence and broadcast.
type Scheduler struct {
	cfg  Config
	deps Deps

	// runtime holds per-driver detection state. The tick loop is the only
	// writer, so access is unsynchronized by design.
	runtime *RuntimeBag

	rng *rand.Rand
	now func() time.Time

	lastPersist time.Time

	// tickMu makes tick execution non-overlapping: a tick that fires while
	// the previous one is still running is skipped, not queued.
	tickMu sync.Mutex
}

// New creates a scheduler. rng may be seeded deterministically in tests.
func New(cfg Config, deps Deps, rng *rand.Rand) *Scheduler {
	s := &Scheduler{
		cfg:     cfg,
		deps:    deps,
		runtime: NewRuntimeBag(),
		rng:     rng,
		now:     time.Now,
	}
	s.lastPersist = s.now()
	return s
}

// Run drives ticks at the configured interval until the context is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	log.WithFields(log.Fields{
		"tick_interval":    s.cfg.TickInterval,
		"persist_interval": s.cfg.PersistInterval,
	}).Info("simulation scheduler started")

	for {
		select {
		case <-ctx.Done():
			log.Info("simulation scheduler stopped")
			return
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

// ForgetDriver drops a driver's runtime detection state, e.g. after the
// driver record is deleted.
func (s *Scheduler) ForgetDriver(driverID primitive.ObjectID) {
	s.runtime.Forget(driverID)
}

// runTick executes one tick unless the previous one is still in flight.
func (s *Scheduler) runTick(ctx context.Context) {
	if !s.tickMu.TryLock() {
		log.Warn("previous tick still running, skipping")
		return
	}
	defer s.tickMu.Unlock()

	start := s.now()
	s.Tick(ctx)
	if elapsed := s.now().Sub(start); elapsed > s.cfg.TickInterval {
		log.WithField("elapsed", elapsed).Warn("tick overran interval")
	}
}

// Tick processes the full active-trip set once. Per-trip failures are
// logged and skipped; nothing here aborts the batch.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()

	trips, err := s.deps.Trips.FindActive(ctx)
	if err != nil {
		log.WithError(err).Error("failed to load active trips")
		return
	}

	for _, trip := range trips {
		if ctx.Err() != nil {
			return
		}
		s.processTrip(ctx, now, trip)
	}
}

// processTrip runs one trip through the pipeline. It never returns an
// error: every failure is a skip, not an abort.
func (s *Scheduler) processTrip(ctx context.Context, now time.Time, trip *models.Trip) {
	tlog := log.WithField("trip_id", trip.ID.Hex())

	switch trip.Status {
	case models.TripScheduled:
		if now.Before(trip.StartTime) {
			return // not due yet, stays stationary
		}
		trip.Status = models.TripOngoing
		trip.RouteIndex = 0
		trip.TickStats = models.TickStats{}
		if err := s.deps.Trips.Start(ctx, trip); err != nil {
			tlog.WithError(err).Warn("failed to start trip, skipping")
			return
		}
		tlog.Info("trip started")
	case models.TripOngoing:
		// carry on below
	default:
		// Defensive: completed trips should already be filtered out of the
		// active set.
		return
	}

	vehicle, err := s.deps.Vehicles.FindByID(ctx, trip.VehicleID)
	if err != nil {
		tlog.WithError(err).Warn("vehicle unavailable, skipping trip")
		return
	}
	driver, err := s.deps.Drivers.FindByID(ctx, trip.DriverID)
	if err != nil {
		tlog.WithError(err).Warn("driver unavailable, skipping trip")
		return
	}

	// A trip may still be waiting on its route. Fetch it now; an empty
	// result means the provider is unavailable and we retry next tick.
	if len(trip.Route) == 0 {
		route := s.deps.Routes.RoutePoints(ctx, trip.OriginCoords, trip.DestinationCoords)
		if len(route) == 0 {
			return
		}
		trip.Route = route
		trip.RouteIndex = 0
		if err := s.deps.Trips.SetRoute(ctx, trip.ID, route); err != nil {
			tlog.WithError(err).Warn("failed to store route, skipping trip")
			return
		}
	}

	// Speed engine.
	prevSpeed := vehicle.Speed
	if prevSpeed == 0 {
		prevSpeed = 20
	}
	newSpeed := NextSpeed(prevSpeed, s.rng)
	roundedSpeed := math.Round(newSpeed)

	vehicle.Speed = roundedSpeed
	vehicle.Status = models.VehicleRunning
	vehicle.LastUpdated = now

	// Movement: consume this tick's distance budget against the route.
	prevPos := models.Location{Lat: vehicle.Lat, Lng: vehicle.Lng}
	budgetM := TickBudgetM(roundedSpeed, s.cfg.VisualMultiplier)
	pos := prevPos
	trip.RouteIndex, pos = Advance(trip.Route, trip.RouteIndex, pos, budgetM)
	vehicle.Lat = pos.Lat
	vehicle.Lng = pos.Lng

	eta := EstimateETA(trip.Route, trip.RouteIndex, pos, roundedSpeed)

	// Route exhausted: finish the trip before any behaviour accounting.
	if trip.RouteExhausted() {
		s.completeTrip(ctx, now, trip, vehicle, driver)
		return
	}

	perf, err := s.deps.Performance.FindOrCreate(ctx, driver.ID)
	if err != nil {
		tlog.WithError(err).Warn("performance record unavailable, skipping trip")
		return
	}
	rt := s.runtime.Get(driver.ID)

	// Accrue distance and driving time on qualifying moving ticks. Jumps of
	// a kilometer or more in one tick are treated as corrupt and dropped.
	if roundedSpeed > minETASpeedKmh {
		d := geo.DistanceKm(prevPos, pos)
		if d < 1 {
			if err := s.deps.Performance.AddDistance(ctx, driver.ID, d, 1.0/60); err != nil {
				tlog.WithError(err).Warn("failed to accrue distance")
			} else {
				perf.TotalDistanceKm += d
				perf.TotalDrivingMinutes += 1.0 / 60
			}
		}
	}

	detection := Detect(rt, prevSpeed, newSpeed, roundedSpeed, perf.TotalDrivingMinutes, s.rng)
	s.applyDetection(ctx, trip, vehicle, driver, detection)

	// Vehicle position goes to storage on the coarse cadence only; the
	// in-memory object stays current regardless.
	if now.Sub(s.lastPersist) >= s.cfg.PersistInterval {
		if err := s.deps.Vehicles.SavePosition(ctx, vehicle); err != nil {
			tlog.WithError(err).Warn("failed to persist vehicle")
		}
		s.lastPersist = now
	}

	if err := s.deps.Trips.SaveProgress(ctx, trip); err != nil {
		tlog.WithError(err).Warn("failed to persist trip progress")
	}

	update := models.VehicleUpdate{
		ID:     vehicle.ID,
		Lat:    vehicle.Lat,
		Lng:    vehicle.Lng,
		Speed:  vehicle.Speed,
		Status: vehicle.Status,
	}
	if eta != nil {
		update.ETASeconds = &eta.Seconds
		update.ETAMinutes = &eta.Minutes
	}
	s.deps.Broadcast.PublishUpdate(update)
}

// completeTrip runs the ongoing→completed transition: stop the vehicle,
// archive the trip into the driver's history, release the driver, refresh
// the performance score and emit a final zero-speed broadcast.
func (s *Scheduler) completeTrip(ctx context.Context, now time.Time, trip *models.Trip, vehicle *models.Vehicle, driver *models.Driver) {
	tlog := log.WithFields(log.Fields{
		"trip_id":   trip.ID.Hex(),
		"driver_id": driver.ID.Hex(),
	})

	trip.Status = models.TripCompleted
	trip.EndTime = &now

	vehicle.Speed = 0
	vehicle.Status = models.VehicleStopped
	vehicle.LastUpdated = now

	if err := s.deps.Vehicles.SavePosition(ctx, vehicle); err != nil {
		tlog.WithError(err).Warn("failed to persist stopped vehicle")
	}
	if err := s.deps.Trips.Complete(ctx, trip); err != nil {
		tlog.WithError(err).Warn("failed to persist completed trip")
	}
	if err := s.deps.Drivers.Release(ctx, driver.ID); err != nil {
		tlog.WithError(err).Warn("failed to release driver")
	}

	distanceKm := geo.RouteDistanceKm(trip.Route)
	entry := models.TripHistoryEntry{
		TripID:      trip.ID,
		StartTime:   trip.StartTime,
		EndTime:     now,
		Origin:      trip.Origin,
		Destination: trip.Destination,
		DistanceKm:  distanceKm,
		DurationMin: trip.Duration,
		VehicleID:   trip.VehicleID.Hex(),
		Status:      models.TripCompleted,
	}
	if err := s.deps.Drivers.ArchiveTrip(ctx, driver.ID, entry); err != nil {
		tlog.WithError(err).Warn("failed to archive trip")
	}

	if err := s.deps.Performance.AddTrip(ctx, driver.ID, distanceKm); err != nil {
		tlog.WithError(err).Warn("failed to accrue trip totals")
	}
	if perf, err := s.deps.Performance.FindOrCreate(ctx, driver.ID); err != nil {
		tlog.WithError(err).Warn("failed to refresh performance score")
	} else {
		score := scoring.Score(perf)
		if err := s.deps.Performance.SetScore(ctx, driver.ID, score); err != nil {
			tlog.WithError(err).Warn("failed to store performance score")
		}
	}

	zero := 0
	s.deps.Broadcast.PublishUpdate(models.VehicleUpdate{
		ID:         vehicle.ID,
		Lat:        vehicle.Lat,
		Lng:        vehicle.Lng,
		Speed:      0,
		Status:     models.VehicleStopped,
		ETASeconds: &zero,
		ETAMinutes: &zero,
	})

	tlog.WithField("distance_km", distanceKm).Info("trip completed")
}

// applyDetection books each fired event against the trip's tick stats, the
// driver's cumulative counters, the alert log and the event sink.
func (s *Scheduler) applyDetection(ctx context.Context, trip *models.Trip, vehicle *models.Vehicle, driver *models.Driver, d Detection) {
	if d.Total() == 0 {
		return
	}

	trip.TickStats.Overspeed += d.Overspeed
	trip.TickStats.HarshBrake += d.HarshBrake
	trip.TickStats.HarshAccel += d.HarshAccel
	trip.TickStats.Fatigue += d.Fatigue

	fire := func(eventType string, n int) {
		if n == 0 {
			return
		}
		if err := s.deps.Performance.IncEvent(ctx, driver.ID, eventType, n); err != nil {
			log.WithError(err).WithField("event", eventType).Warn("failed to increment event counter")
		}
		for i := 0; i < n; i++ {
			event := models.Event{Type: eventType, VehicleID: vehicle.ID, DriverID: driver.ID}
			s.deps.Events.PublishEvent(event)

			alert := &models.Alert{
				Type:      eventType,
				VehicleID: vehicle.ID,
				DriverID:  driver.ID,
				Message:   eventType + " detected for vehicle " + vehicle.VehicleNumber,
				Status:    "Unresolved",
				CreatedAt: s.now(),
			}
			if err := s.deps.Alerts.Insert(ctx, alert); err != nil {
				log.WithError(err).WithField("event", eventType).Warn("failed to store alert")
			}
		}
	}

	fire(models.EventOverspeed, d.Overspeed)
	fire(models.EventHarshBrake, d.HarshBrake)
	fire(models.EventHarshAccel, d.HarshAccel)
	fire(models.EventFatigue, d.Fatigue)
}
