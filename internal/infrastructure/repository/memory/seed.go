package memory

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

// SeedEffectiveAt marks the point the seeded grid became current. Results
// saved later freeze their own driver->team mapping off this snapshot.
var SeedEffectiveAt = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func SeedConstructors() []roster.Constructor {
	return []roster.Constructor{
		{ID: "team-redwing", Name: "Redwing Racing", ClassOf: roster.ClassA, IsActive: true},
		{ID: "team-silverline", Name: "Silverline GP", ClassOf: roster.ClassA, IsActive: true},
		{ID: "team-scuderia-lupo", Name: "Scuderia Lupo", ClassOf: roster.ClassA, IsActive: true},
		{ID: "team-meridian", Name: "Meridian Motorsport", ClassOf: roster.ClassA, IsActive: true},
		{ID: "team-borealis", Name: "Borealis F1", ClassOf: roster.ClassA, IsActive: true},
		{ID: "team-cobalt", Name: "Cobalt Apex", ClassOf: roster.ClassB, IsActive: true},
		{ID: "team-tricolore", Name: "Tricolore Course", ClassOf: roster.ClassB, IsActive: true},
		{ID: "team-halcyon", Name: "Halcyon Racing", ClassOf: roster.ClassB, IsActive: true},
		{ID: "team-vortex", Name: "Vortex Grand Prix", ClassOf: roster.ClassB, IsActive: true},
		{ID: "team-arroyo", Name: "Arroyo Sport", ClassOf: roster.ClassB, IsActive: true},
	}
}

func SeedDrivers() []roster.Driver {
	return []roster.Driver{
		{ID: "drv-vanek", Name: "Milan Vanek", ClassOf: roster.ClassA, ConstructorID: "team-redwing", IsActive: true},
		{ID: "drv-okafor", Name: "Chidi Okafor", ClassOf: roster.ClassA, ConstructorID: "team-redwing", IsActive: true},
		{ID: "drv-laurent", Name: "Theo Laurent", ClassOf: roster.ClassA, ConstructorID: "team-silverline", IsActive: true},
		{ID: "drv-kimura", Name: "Sora Kimura", ClassOf: roster.ClassA, ConstructorID: "team-silverline", IsActive: true},
		{ID: "drv-moretti", Name: "Dario Moretti", ClassOf: roster.ClassA, ConstructorID: "team-scuderia-lupo", IsActive: true},
		{ID: "drv-castillo", Name: "Rafael Castillo", ClassOf: roster.ClassA, ConstructorID: "team-scuderia-lupo", IsActive: true},
		{ID: "drv-bergstrom", Name: "Axel Bergstrom", ClassOf: roster.ClassA, ConstructorID: "team-meridian", IsActive: true},
		{ID: "drv-walsh", Name: "Ciaran Walsh", ClassOf: roster.ClassA, ConstructorID: "team-meridian", IsActive: true},
		{ID: "drv-petrov", Name: "Nikolai Petrov", ClassOf: roster.ClassA, ConstructorID: "team-borealis", IsActive: true},
		{ID: "drv-santos", Name: "Luca Santos", ClassOf: roster.ClassA, ConstructorID: "team-borealis", IsActive: true},
		{ID: "drv-fletcher", Name: "Jamie Fletcher", ClassOf: roster.ClassB, ConstructorID: "team-cobalt", IsActive: true},
		{ID: "drv-yilmaz", Name: "Emre Yilmaz", ClassOf: roster.ClassB, ConstructorID: "team-cobalt", IsActive: true},
		{ID: "drv-dubois", Name: "Antoine Dubois", ClassOf: roster.ClassB, ConstructorID: "team-tricolore", IsActive: true},
		{ID: "drv-marchetti", Name: "Enzo Marchetti", ClassOf: roster.ClassB, ConstructorID: "team-tricolore", IsActive: true},
		{ID: "drv-novak", Name: "Petr Novak", ClassOf: roster.ClassB, ConstructorID: "team-halcyon", IsActive: true},
		{ID: "drv-singh", Name: "Arjun Singh", ClassOf: roster.ClassB, ConstructorID: "team-halcyon", IsActive: true},
		{ID: "drv-lindqvist", Name: "Oskar Lindqvist", ClassOf: roster.ClassB, ConstructorID: "team-vortex", IsActive: true},
		{ID: "drv-tanaka", Name: "Ren Tanaka", ClassOf: roster.ClassB, ConstructorID: "team-vortex", IsActive: true},
		{ID: "drv-herrera", Name: "Mateo Herrera", ClassOf: roster.ClassB, ConstructorID: "team-arroyo", IsActive: true},
		{ID: "drv-kowalski", Name: "Bartosz Kowalski", ClassOf: roster.ClassB, ConstructorID: "team-arroyo", IsActive: true},
	}
}

func SeedEvents() []event.Event {
	specs := []struct {
		id        string
		name      string
		country   string
		hasSprint bool
		lock      time.Time
	}{
		{"gp-sakhir", "Sakhir Grand Prix", "BH", false, time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC)},
		{"gp-jeddah", "Jeddah Grand Prix", "SA", false, time.Date(2026, time.March, 14, 16, 0, 0, 0, time.UTC)},
		{"gp-melbourne", "Melbourne Grand Prix", "AU", false, time.Date(2026, time.March, 28, 4, 0, 0, 0, time.UTC)},
		{"gp-suzuka", "Suzuka Grand Prix", "JP", false, time.Date(2026, time.April, 11, 5, 0, 0, 0, time.UTC)},
		{"gp-shanghai", "Shanghai Grand Prix", "CN", true, time.Date(2026, time.April, 18, 6, 0, 0, 0, time.UTC)},
		{"gp-miami", "Miami Grand Prix", "US", true, time.Date(2026, time.May, 2, 19, 0, 0, 0, time.UTC)},
		{"gp-imola", "Imola Grand Prix", "IT", false, time.Date(2026, time.May, 16, 13, 0, 0, 0, time.UTC)},
		{"gp-monaco", "Monaco Grand Prix", "MC", false, time.Date(2026, time.May, 23, 13, 0, 0, 0, time.UTC)},
		{"gp-barcelona", "Barcelona Grand Prix", "ES", false, time.Date(2026, time.June, 6, 13, 0, 0, 0, time.UTC)},
		{"gp-montreal", "Montreal Grand Prix", "CA", false, time.Date(2026, time.June, 13, 18, 0, 0, 0, time.UTC)},
		{"gp-spielberg", "Spielberg Grand Prix", "AT", true, time.Date(2026, time.June, 27, 13, 0, 0, 0, time.UTC)},
		{"gp-silverstone", "Silverstone Grand Prix", "GB", false, time.Date(2026, time.July, 4, 14, 0, 0, 0, time.UTC)},
		{"gp-spa", "Spa Grand Prix", "BE", true, time.Date(2026, time.July, 18, 13, 0, 0, 0, time.UTC)},
		{"gp-budapest", "Budapest Grand Prix", "HU", false, time.Date(2026, time.July, 25, 13, 0, 0, 0, time.UTC)},
		{"gp-zandvoort", "Zandvoort Grand Prix", "NL", false, time.Date(2026, time.August, 22, 13, 0, 0, 0, time.UTC)},
		{"gp-monza", "Monza Grand Prix", "IT", false, time.Date(2026, time.September, 5, 13, 0, 0, 0, time.UTC)},
		{"gp-baku", "Baku Grand Prix", "AZ", false, time.Date(2026, time.September, 19, 11, 0, 0, 0, time.UTC)},
		{"gp-singapore", "Singapore Grand Prix", "SG", false, time.Date(2026, time.October, 3, 12, 0, 0, 0, time.UTC)},
		{"gp-austin", "Austin Grand Prix", "US", true, time.Date(2026, time.October, 17, 19, 0, 0, 0, time.UTC)},
		{"gp-mexico", "Mexico Grand Prix", "MX", false, time.Date(2026, time.October, 24, 20, 0, 0, 0, time.UTC)},
		{"gp-interlagos", "Interlagos Grand Prix", "BR", true, time.Date(2026, time.November, 7, 17, 0, 0, 0, time.UTC)},
		{"gp-vegas", "Las Vegas Grand Prix", "US", false, time.Date(2026, time.November, 21, 6, 0, 0, 0, time.UTC)},
		{"gp-lusail", "Lusail Grand Prix", "QA", false, time.Date(2026, time.November, 28, 16, 0, 0, 0, time.UTC)},
		{"gp-yasmarina", "Yas Marina Grand Prix", "AE", false, time.Date(2026, time.December, 5, 13, 0, 0, 0, time.UTC)},
	}

	events := make([]event.Event, 0, len(specs))
	for i, s := range specs {
		events = append(events, event.Event{
			ID:             s.id,
			Round:          i + 1,
			Name:           s.name,
			Country:        s.country,
			HasSprint:      s.hasSprint,
			LockAtUTC:      s.lock,
			SoftDeadlineAt: s.lock.Add(-30 * time.Minute),
		})
	}
	return events
}

func SeedScoringSettings() scoring.Settings {
	return scoring.Settings{
		Profiles: []scoring.Profile{
			{
				ID:     "profile-standard",
				Name:   "Standard",
				Points: scoring.Default(),
			},
		},
		ActiveProfileID: "profile-standard",
	}
}
