package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/jhagedorn/dartliga/internal/database"
	"github.com/jhagedorn/dartliga/internal/league"
)

// Seeds a local database with a small demo season so the dashboard has
// something to show without a reachable provider.
func main() {
	log.Info("Starting database seeder...")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "dartliga.db"
	}
	season := os.Getenv("SEASON")
	if season == "" {
		season = "2025/26"
	}

	db, teardown, err := database.InitDB(dbName, "", "", "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := league.New(db)

	teams := []string{"DC Dreifach Null", "Flying Arrows", "Oche Originals", "Bullseye Brigade"}
	for _, name := range teams {
		if _, err := store.UpsertTeam(name, "Bezirksliga A", season); err != nil {
			log.Fatalf("Failed to seed team %s: %s", name, err)
		}
	}
	log.Info("Seeded teams", "count", len(teams))

	rng := rand.New(rand.NewSource(42))
	players := make(map[string][]string)
	for _, team := range teams {
		for i := 1; i <= 4; i++ {
			players[team] = append(players[team], fmt.Sprintf("%s Player %d", team, i))
		}
	}

	for round := 1; round <= 6; round++ {
		matchdayID, err := store.UpsertMatchday(round, season, fmt.Sprintf("2025-09-%02d", round*2))
		if err != nil {
			log.Fatalf("Failed to seed matchday %d: %s", round, err)
		}

		pairings := [][2]string{{teams[0], teams[1]}, {teams[2], teams[3]}}
		if round%2 == 0 {
			pairings = [][2]string{{teams[0], teams[2]}, {teams[1], teams[3]}}
		}

		for _, pairing := range pairings {
			home, err := store.GetTeam(pairing[0], season)
			if err != nil {
				log.Fatalf("Failed to look up team %s: %s", pairing[0], err)
			}
			away, err := store.GetTeam(pairing[1], season)
			if err != nil {
				log.Fatalf("Failed to look up team %s: %s", pairing[1], err)
			}

			homeSets := rng.Intn(8)
			awaySets := 7 - homeSets
			matchID, err := store.UpsertMatch(league.MatchRecord{
				MatchdayID: matchdayID,
				HomeTeamID: home.ID,
				AwayTeamID: away.ID,
				HomeSets:   homeSets,
				AwaySets:   awaySets,
				HomeLegs:   homeSets*2 + rng.Intn(4),
				AwayLegs:   awaySets*2 + rng.Intn(4),
			})
			if err != nil {
				log.Fatalf("Failed to seed match: %s", err)
			}

			var singles []league.SinglesGameRecord
			for order := 1; order <= 4; order++ {
				homeLegs := rng.Intn(3)
				awayLegs := 2
				if homeLegs == 2 {
					awayLegs = rng.Intn(2)
				}
				singles = append(singles, league.SinglesGameRecord{
					GameOrder:     order,
					HomePlayer:    players[pairing[0]][order-1],
					AwayPlayer:    players[pairing[1]][order-1],
					HomeLegs:      homeLegs,
					AwayLegs:      awayLegs,
					HomeAverage:   35 + rng.Float64()*30,
					AwayAverage:   35 + rng.Float64()*30,
					HomeCheckouts: []int{24 + rng.Intn(80)},
					AwayCheckouts: []int{24 + rng.Intn(80)},
				})
			}
			doubles := []league.DoublesGameRecord{{
				GameOrder:   5,
				HomePlayers: [2]string{players[pairing[0]][0], players[pairing[0]][1]},
				AwayPlayers: [2]string{players[pairing[1]][0], players[pairing[1]][1]},
				HomeLegs:    rng.Intn(3),
				AwayLegs:    rng.Intn(3),
				HomeAverage: 30 + rng.Float64()*25,
				AwayAverage: 30 + rng.Float64()*25,
			}}
			if err := store.ReplaceMatchGames(matchID, singles, doubles); err != nil {
				log.Fatalf("Failed to seed games: %s", err)
			}
		}
	}
	log.Info("Seeded matchdays with matches and games", "rounds", 6)

	for team, roster := range players {
		t, err := store.GetTeam(team, season)
		if err != nil {
			log.Fatalf("Failed to look up team %s: %s", team, err)
		}
		if err := store.ReplaceTeamAverage(t.ID, 40+rng.Float64()*15); err != nil {
			log.Fatalf("Failed to seed team average: %s", err)
		}
		for _, name := range roster {
			won := rng.Intn(6)
			lost := 6 - won
			if err := store.UpsertPlayerStatistic(league.PlayerStatisticRecord{
				PlayerName:  name,
				TeamName:    team,
				Season:      season,
				Average:     35 + rng.Float64()*30,
				SinglesWon:  won,
				SinglesLost: lost,
				LegsWon:     won*2 + rng.Intn(4),
				LegsLost:    lost*2 + rng.Intn(4),
			}); err != nil {
				log.Fatalf("Failed to seed player statistic: %s", err)
			}
		}
	}
	log.Info("Seeded team averages and player statistics")

	log.Info("Seeding complete", "db", dbName, "season", season)
}
