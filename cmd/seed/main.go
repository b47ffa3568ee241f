// Command seed populates the catalog with a realistic Indian domestic
// network: airlines, airports, aircraft with cabin templates, two weeks
// of flights with stamped-out seat maps, and demo users. Idempotent:
// a non-empty airport table short-circuits the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skylane/concourse/internal/config"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/logging"
	gormModels "skylane/concourse/internal/models/gorm"
)

var airlinesData = []struct{ Name, Code string }{
	{"IndiGo", "6E"},
	{"Air India", "AI"},
	{"SpiceJet", "SG"},
	{"Vistara", "UK"},
	{"Akasa Air", "QP"},
	{"Air India Express", "IX"},
}

var airportsData = []struct{ Code, Name, City, Country string }{
	{"DEL", "Indira Gandhi International Airport", "New Delhi", "India"},
	{"BOM", "Chhatrapati Shivaji Maharaj International Airport", "Mumbai", "India"},
	{"BLR", "Kempegowda International Airport", "Bengaluru", "India"},
	{"MAA", "Chennai International Airport", "Chennai", "India"},
	{"CCU", "Netaji Subhas Chandra Bose International Airport", "Kolkata", "India"},
	{"HYD", "Rajiv Gandhi International Airport", "Hyderabad", "India"},
	{"AMD", "Sardar Vallabhbhai Patel International Airport", "Ahmedabad", "India"},
	{"PNQ", "Pune Airport", "Pune", "India"},
	{"GOI", "Goa International Airport", "Goa", "India"},
	{"COK", "Cochin International Airport", "Kochi", "India"},
	{"JAI", "Jaipur International Airport", "Jaipur", "India"},
	{"LKO", "Chaudhary Charan Singh International Airport", "Lucknow", "India"},
}

var aircraftData = []struct {
	Model        string
	Registration string
	Economy      int
	EconomyFlex  int
	Business     int
	First        int
}{
	{"Airbus A320neo", "VT-ANA", 156, 12, 12, 0},
	{"Airbus A321neo", "VT-ANB", 188, 12, 20, 0},
	{"Boeing 737-800", "VT-ANC", 144, 12, 12, 0},
	{"Boeing 737 MAX 8", "VT-AND", 154, 12, 12, 0},
	{"ATR 72-600", "VT-ANE", 70, 0, 0, 0},
	{"Boeing 787-8 Dreamliner", "VT-ANF", 198, 18, 30, 10},
}

var routesData = []struct {
	Origin, Destination string
	DurationMin         int
	BaseFareMin         int
	BaseFareMax         int
}{
	{"DEL", "BOM", 130, 4500, 8500},
	{"BOM", "DEL", 130, 4500, 8500},
	{"DEL", "BLR", 165, 5000, 9500},
	{"BLR", "DEL", 165, 5000, 9500},
	{"DEL", "MAA", 170, 5500, 10000},
	{"MAA", "DEL", 170, 5500, 10000},
	{"DEL", "CCU", 140, 4000, 7500},
	{"CCU", "DEL", 140, 4000, 7500},
	{"BOM", "BLR", 95, 3500, 6500},
	{"BLR", "BOM", 95, 3500, 6500},
	{"BOM", "GOI", 70, 2500, 5000},
	{"GOI", "BOM", 70, 2500, 5000},
	{"HYD", "BLR", 75, 3000, 5500},
	{"BLR", "HYD", 75, 3000, 5500},
	{"DEL", "JAI", 55, 2200, 4200},
	{"JAI", "DEL", 55, 2200, 4200},
}

func main() {
	days := flag.Int("days", 14, "how many days of schedule to create")
	seed := flag.Int64("seed", 42, "rng seed for reproducible schedules")
	flag.Parse()

	if err := logging.Init("development"); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Configuration error", "error", err.Error())
	}

	gormDB, err := db.InitPostgresORM(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres", "error", err.Error())
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Schema migration failed", "error", err.Error())
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed))

	airports := repositories.NewAirportRepository(gormDB)
	airlines := repositories.NewAirlineRepository(gormDB)
	aircraft := repositories.NewAircraftRepository(gormDB)
	flights := repositories.NewFlightRepository(gormDB)
	users := repositories.NewUserRepository(gormDB)

	count, err := airports.Count(ctx)
	if err != nil {
		logging.Fatal("Airport count failed", "error", err.Error())
	}
	if count > 0 {
		logging.Info("Catalog already seeded, nothing to do", "airports", count)
		os.Exit(0)
	}

	seedCatalog(ctx, airports, airlines)
	craft := seedAircraft(ctx, aircraft)
	total := seedFlights(ctx, flights, craft, rng, *days)
	seedUsers(ctx, users)

	logging.Info("Seeding complete",
		"airports", len(airportsData),
		"airlines", len(airlinesData),
		"aircraft", len(aircraftData),
		"flights", total,
	)
}

func seedCatalog(ctx context.Context, airports *repositories.AirportRepository, airlines *repositories.AirlineRepository) {
	var aps []gormModels.Airport
	for _, a := range airportsData {
		aps = append(aps, gormModels.Airport{Code: a.Code, Name: a.Name, City: a.City, Country: a.Country})
	}
	if err := airports.BatchInsert(ctx, aps); err != nil {
		logging.Fatal("Airport seeding failed", "error", err.Error())
	}

	var als []gormModels.Airline
	for _, a := range airlinesData {
		als = append(als, gormModels.Airline{Code: a.Code, Name: a.Name})
	}
	if err := airlines.BatchInsert(ctx, als); err != nil {
		logging.Fatal("Airline seeding failed", "error", err.Error())
	}
}

func seedAircraft(ctx context.Context, repo *repositories.AircraftRepository) []gormModels.Aircraft {
	var out []gormModels.Aircraft
	for _, a := range aircraftData {
		dist := constants.ClassDistribution{
			constants.TierEconomy: a.Economy,
		}
		if a.EconomyFlex > 0 {
			dist[constants.TierEconomyFlex] = a.EconomyFlex
		}
		if a.Business > 0 {
			dist[constants.TierBusiness] = a.Business
		}
		if a.First > 0 {
			dist[constants.TierFirst] = a.First
		}

		craft := gormModels.Aircraft{
			Registration:      a.Registration,
			Model:             a.Model,
			TotalSeats:        a.Economy + a.EconomyFlex + a.Business + a.First,
			ClassDistribution: dist,
		}
		if err := repo.Insert(ctx, &craft); err != nil {
			logging.Fatal("Aircraft seeding failed", "model", a.Model, "error", err.Error())
		}

		templates := cabinTemplates(craft.ID, dist)
		if err := repo.BatchInsertTemplates(ctx, templates); err != nil {
			logging.Fatal("Seat template seeding failed", "model", a.Model, "error", err.Error())
		}
		craft.SeatTemplates = templates
		out = append(out, craft)
	}
	return out
}

// cabinTemplates lays the cabin out front to back, six abreast, premium
// tiers first. A and F are windows, C and D aisles.
func cabinTemplates(aircraftID int64, dist constants.ClassDistribution) []gormModels.AircraftSeatTemplate {
	letters := []string{"A", "B", "C", "D", "E", "F"}
	positions := map[string]constants.SeatPosition{
		"A": constants.PositionWindow, "F": constants.PositionWindow,
		"B": constants.PositionMiddle, "E": constants.PositionMiddle,
		"C": constants.PositionAisle, "D": constants.PositionAisle,
	}
	surcharges := map[constants.SeatPosition]float64{
		constants.PositionWindow: 200,
		constants.PositionAisle:  100,
		constants.PositionMiddle: 0,
	}

	var templates []gormModels.AircraftSeatTemplate
	row := 1
	for _, tier := range constants.AllTiers {
		remaining := dist[tier]
		for remaining > 0 {
			for _, letter := range letters {
				if remaining == 0 {
					break
				}
				pos := positions[letter]
				templates = append(templates, gormModels.AircraftSeatTemplate{
					AircraftID: aircraftID,
					SeatNumber: fmt.Sprintf("%d%s", row, letter),
					Class:      tier,
					Position:   pos,
					Surcharge:  surcharges[pos],
				})
				remaining--
			}
			row++
		}
	}
	return templates
}

func seedFlights(ctx context.Context, repo *repositories.FlightRepository, craft []gormModels.Aircraft, rng *rand.Rand, days int) int {
	start := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	total := 0

	for day := 0; day < days; day++ {
		for _, route := range routesData {
			departures := 1 + rng.Intn(2)
			for n := 0; n < departures; n++ {
				airline := airlinesData[rng.Intn(len(airlinesData))]
				ac := craft[rng.Intn(len(craft))]

				dep := start.AddDate(0, 0, day).
					Add(time.Duration(6+rng.Intn(16)) * time.Hour).
					Add(time.Duration(rng.Intn(12)*5) * time.Minute)
				arr := dep.Add(time.Duration(route.DurationMin+rng.Intn(20)) * time.Minute)

				base := float64(route.BaseFareMin + rng.Intn(route.BaseFareMax-route.BaseFareMin))
				fares := constants.FareMap{}
				for tier := range ac.ClassDistribution {
					fares[tier] = base
				}

				flight := gormModels.Flight{
					FlightNumber:    fmt.Sprintf("%s%d", airline.Code, 100+rng.Intn(900)),
					ScheduledDate:   dep.Format("2006-01-02"),
					AirlineCode:     airline.Code,
					OriginCode:      route.Origin,
					DestinationCode: route.Destination,
					AircraftID:      ac.ID,
					DepartureTime:   dep,
					ArrivalTime:     arr,
					BaseFares:       fares,
					DemandIndex:     float64(20 + rng.Intn(40)),
					Status:          constants.FlightScheduled,
				}
				if err := repo.Insert(ctx, &flight); err != nil {
					// Duplicate flight number for the day; skip quietly.
					continue
				}

				seats := make([]gormModels.Seat, 0, len(ac.SeatTemplates))
				for _, tpl := range ac.SeatTemplates {
					seats = append(seats, gormModels.Seat{
						FlightID:   flight.ID,
						SeatNumber: tpl.SeatNumber,
						Class:      tpl.Class,
						Position:   tpl.Position,
						Surcharge:  tpl.Surcharge,
						Status:     constants.SeatAvailable,
					})
				}
				if err := repo.BatchInsertSeats(ctx, seats); err != nil {
					logging.Fatal("Seat map seeding failed", "flight", flight.FlightNumber, "error", err.Error())
				}
				total++
			}
		}
	}
	return total
}

func seedUsers(ctx context.Context, repo *repositories.UserRepository) {
	staffAirline := "6E"
	demo := []struct {
		Email    string
		Name     string
		Role     constants.Role
		Airline  *string
		Password string
	}{
		{"admin@skylane.example", "Platform Admin", constants.RoleAdmin, nil, "admin-pass-1"},
		{"ops@indigo.example", "IndiGo Ops Desk", constants.RoleAirlineStaff, &staffAirline, "staff-pass-1"},
		{"tower@del.example", "DEL Airport Authority", constants.RoleAirportAuthority, nil, "tower-pass-1"},
		{"traveller@example.com", "Demo Traveller", constants.RoleCustomer, nil, "travel-pass-1"},
	}

	for _, u := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			logging.Fatal("Password hashing failed", "error", err.Error())
		}
		user := gormModels.User{
			Email:        u.Email,
			PasswordHash: string(hash),
			FullName:     u.Name,
			Role:         u.Role,
			AirlineCode:  u.Airline,
			IsActive:     true,
		}
		if err := repo.Insert(ctx, &user); err != nil {
			logging.Fatal("User seeding failed", "email", u.Email, "error", err.Error())
		}
	}
}
