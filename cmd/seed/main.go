// Command seed inserts a demo fleet: vehicles, drivers and scheduled trips
// between jittered city pairs. Intended for local development against an
// empty database.
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kavinmb/fleet-telemetry/internal/config"
	"github.com/kavinmb/fleet-telemetry/internal/db"
	"github.com/kavinmb/fleet-telemetry/internal/geo"
	"github.com/kavinmb/fleet-telemetry/internal/models"
)

type city struct {
	Name string
	Loc  models.Location
}

// Cities for realistic routes
var cities = []city{
	{"London", models.Location{Lat: 51.5074, Lng: -0.1278}},
	{"Paris", models.Location{Lat: 48.8566, Lng: 2.3522}},
	{"Madrid", models.Location{Lat: 40.4168, Lng: -3.7038}},
	{"Berlin", models.Location{Lat: 52.5200, Lng: 13.4050}},
	{"Istanbul", models.Location{Lat: 41.0082, Lng: 28.9784}},
	{"Cardiff", models.Location{Lat: 51.4816, Lng: -3.1791}},
	{"Amsterdam", models.Location{Lat: 52.3676, Lng: 4.9041}},
	{"Brussels", models.Location{Lat: 50.8503, Lng: 4.3517}},
	{"Milan", models.Location{Lat: 45.4642, Lng: 9.1900}},
	{"Munich", models.Location{Lat: 48.1351, Lng: 11.5820}},
}

var makes = []string{"Ford", "Chevrolet", "Toyota", "Volvo", "Mercedes", "Scania"}
var vehicleModels = []string{"Transit", "Silverado", "Hiace", "FH16", "Actros", "R500"}

var driverNames = []string{
	"Arjun Mehta", "Sofia Petrov", "Liam O'Brien", "Yuki Tanaka", "Carlos Reyes",
	"Amara Diallo", "Elena Rossi", "Noah Schmidt", "Priya Nair", "Tomasz Kowalski",
}

func jitterLocation(base models.Location, meters float64) models.Location {
	latMetersPerDeg := 111320.0
	lngMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (rand.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLng := (rand.Float64()*2 - 1) * (meters / lngMetersPerDeg)
	return models.Location{Lat: base.Lat + dLat, Lng: base.Lng + dLng}
}

// cityPair picks an origin and a destination at least 50 km apart, each
// jittered so vehicles start close to roads rather than on the exact same
// point.
func cityPair() (city, city) {
	origin := cities[rand.Intn(len(cities))]
	for i := 0; i < 10; i++ {
		cand := cities[rand.Intn(len(cities))]
		if geo.DistanceKm(origin.Loc, cand.Loc) > 50 {
			return origin, cand
		}
	}
	if origin.Name == cities[0].Name {
		return origin, cities[1]
	}
	return origin, cities[0]
}

func main() {
	cfg := config.Load()

	fleetSize := 5
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			fleetSize = n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	collections := db.NewCollections(client, cfg.MongoDB)
	now := time.Now()

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"database":   cfg.MongoDB,
	}).Info("seeding demo fleet")

	for i := 0; i < fleetSize; i++ {
		origin, dest := cityPair()
		start := jitterLocation(origin.Loc, 500)
		end := jitterLocation(dest.Loc, 500)

		driver := &models.Driver{
			Name:        driverNames[i%len(driverNames)],
			Phone:       fmt.Sprintf("+44 7700 900%03d", rand.Intn(1000)),
			License:     fmt.Sprintf("DL-%06d", rand.Intn(1000000)),
			Rating:      3.5 + rand.Float64()*1.5,
			Status:      models.DriverReserved,
			TripHistory: []models.TripHistoryEntry{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := collections.Drivers.Insert(ctx, driver); err != nil {
			log.WithError(err).Error("failed to insert driver")
			continue
		}

		vehicle := &models.Vehicle{
			VehicleNumber: fmt.Sprintf("FL-%04d", 1000+i),
			Model:         makes[rand.Intn(len(makes))] + " " + vehicleModels[rand.Intn(len(vehicleModels))],
			DriverName:    driver.Name,
			Lat:           start.Lat,
			Lng:           start.Lng,
			Speed:         0,
			Status:        models.VehicleIdle,
			Fuel:          50 + rand.Float64()*50,
			LastUpdated:   now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := collections.Vehicles.Insert(ctx, vehicle); err != nil {
			log.WithError(err).Error("failed to insert vehicle")
			continue
		}

		// Stagger starts so trips come due one at a time.
		trip := &models.Trip{
			VehicleID:         vehicle.ID,
			DriverID:          driver.ID,
			Origin:            origin.Name,
			Destination:       dest.Name,
			OriginCoords:      start,
			DestinationCoords: end,
			StartTime:         now.Add(time.Duration(i) * time.Minute),
			Duration:          geo.DistanceKm(start, end), // minutes, assuming 60 km/h average
			Status:            models.TripScheduled,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := collections.Trips.Insert(ctx, trip); err != nil {
			log.WithError(err).Error("failed to insert trip")
			continue
		}

		log.WithFields(log.Fields{
			"trip_id":     trip.ID.Hex(),
			"vehicle":     vehicle.VehicleNumber,
			"driver":      driver.Name,
			"origin":      origin.Name,
			"destination": dest.Name,
		}).Info("seeded trip")
	}

	log.Info("seeding completed")
}
