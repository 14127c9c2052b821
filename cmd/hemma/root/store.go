package root

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hemma/internal/model"
	"hemma/internal/storage"
	"hemma/internal/tracker"
	"hemma/internal/weather"
)

func openStore() (*storage.SQLiteStore, func(), error) {
	path := os.Getenv("HEMMA_DB")
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}
	return store, cleanup, nil
}

// openServices builds both tracker instances over one store and brings
// their stored state up to date.
func openServices(ctx context.Context, notifier tracker.Notifier) (board, walk *tracker.Service, cleanup func(), err error) {
	store, cleanup, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}

	board = tracker.NewService(tracker.Cleaning(rosterFromEnv("HEMMA_CLEANING_ROSTER")), store, nil, notifier)
	walk = tracker.NewService(tracker.DogWalk(rosterFromEnv("HEMMA_WALK_ROSTER")), store, nil, notifier)
	for _, svc := range []*tracker.Service{board, walk} {
		if err := svc.Init(ctx); err != nil {
			cleanup()
			return nil, nil, nil, err
		}
	}
	return board, walk, cleanup, nil
}

func serviceFor(app string, board, walk *tracker.Service) (*tracker.Service, error) {
	switch app {
	case "", "cleaning":
		return board, nil
	case "walk":
		return walk, nil
	default:
		return nil, fmt.Errorf("unknown tracker %q (use cleaning or walk)", app)
	}
}

func rosterFromEnv(key string) model.Roster {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	roster := make(model.Roster, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			roster = append(roster, name)
		}
	}
	return roster
}

func locationFromEnv() weather.Location {
	loc := weather.DefaultLocation
	if lat, err := strconv.ParseFloat(os.Getenv("HEMMA_LAT"), 64); err == nil {
		if lon, err := strconv.ParseFloat(os.Getenv("HEMMA_LON"), 64); err == nil {
			loc = weather.Location{Latitude: lat, Longitude: lon, Label: os.Getenv("HEMMA_PLACE")}
		}
	}
	return loc
}

func stdoutNotifier() tracker.Notifier {
	return tracker.NotifierFunc(func(message string) {
		fmt.Println(message)
	})
}
