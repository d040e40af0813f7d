package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient is an HTTP client for the league scraper service.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a new scraper service client.
func NewClient(baseURL string) Client {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    baseURL,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// FetchSnapshot fetches the season snapshot, optionally bounded to rounds
// greater than or equal to minRound.
func (c *APIClient) FetchSnapshot(ctx context.Context, season string, minRound int) (*Snapshot, error) {
	reqURL := fmt.Sprintf("%s/api/league/%s", c.BaseURL, url.PathEscape(season))
	if minRound > 0 {
		reqURL += "?min_round=" + strconv.Itoa(minRound)
	}

	var resp snapshotResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Season:       season,
		TeamAverages: resp.TeamAverages,
	}
	if snapshot.TeamAverages == nil {
		snapshot.TeamAverages = map[string]float64{}
	}
	for _, t := range resp.Teams {
		snapshot.Teams = append(snapshot.Teams, TeamEntry{Name: t.Name, Division: t.Division})
	}
	for _, md := range resp.Matchdays {
		day := Matchday{Round: md.Round, Date: md.Date}
		for _, m := range md.Matches {
			day.Matches = append(day.Matches, MatchResult{
				HomeTeam: m.HomeTeam,
				AwayTeam: m.AwayTeam,
				HomeSets: m.HomeSets,
				AwaySets: m.AwaySets,
				HomeLegs: m.HomeLegs,
				AwayLegs: m.AwayLegs,
			})
		}
		snapshot.Matchdays = append(snapshot.Matchdays, day)
	}
	for _, p := range resp.PlayerStats {
		snapshot.PlayerStats = append(snapshot.PlayerStats, PlayerStat{
			Name:        p.Name,
			Team:        p.Team,
			Average:     p.Average,
			SinglesWon:  p.SinglesWon,
			SinglesLost: p.SinglesLost,
			LegsWon:     p.LegsWon,
			LegsLost:    p.LegsLost,
		})
	}
	for _, s := range resp.FutureSchedule {
		snapshot.FutureSchedule = append(snapshot.FutureSchedule, ScheduledMatch{
			Round:    s.Round,
			Date:     s.Date,
			HomeTeam: s.HomeTeam,
			AwayTeam: s.AwayTeam,
			Venue:    s.Venue,
		})
	}
	for _, d := range resp.LatestMatches {
		snapshot.LatestMatches = append(snapshot.LatestMatches, mapMatchDetail(d))
	}

	log.Debug("Fetched league snapshot", "season", season, "minRound", minRound,
		"matchdays", len(snapshot.Matchdays), "latestMatches", len(snapshot.LatestMatches))
	return snapshot, nil
}

// FetchTeamSpecials fetches 180s and high finishes for a single team.
func (c *APIClient) FetchTeamSpecials(ctx context.Context, season, team string) (*TeamSpecials, error) {
	reqURL := fmt.Sprintf("%s/api/specials/%s/%s", c.BaseURL, url.PathEscape(season), url.PathEscape(team))

	var resp teamSpecialsResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	specials := &TeamSpecials{
		Team:         team,
		OneEighties:  resp.OneEighties,
		HighFinishes: resp.HighFinishes,
	}
	if specials.OneEighties == nil {
		specials.OneEighties = map[string]int{}
	}
	if specials.HighFinishes == nil {
		specials.HighFinishes = map[string][]int{}
	}
	return specials, nil
}

func (c *APIClient) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Requesting data from scraper service", "url", reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from scraper service", "status", resp.StatusCode, "body", string(body))
		return &FetchError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func mapMatchDetail(d matchDetailResponse) MatchDetail {
	detail := MatchDetail{
		Round:    d.Round,
		HomeTeam: d.HomeTeam,
		AwayTeam: d.AwayTeam,
	}
	for _, g := range d.Singles {
		detail.Singles = append(detail.Singles, SinglesGame{
			GameOrder:     g.GameOrder,
			HomePlayer:    g.HomePlayer,
			AwayPlayer:    g.AwayPlayer,
			HomeLegs:      g.HomeLegs,
			AwayLegs:      g.AwayLegs,
			HomeAverage:   g.HomeAverage,
			AwayAverage:   g.AwayAverage,
			HomeCheckouts: g.HomeCheckouts,
			AwayCheckouts: g.AwayCheckouts,
		})
	}
	for _, g := range d.Doubles {
		pair := DoublesGame{
			GameOrder:     g.GameOrder,
			HomeLegs:      g.HomeLegs,
			AwayLegs:      g.AwayLegs,
			HomeAverage:   g.HomeAverage,
			AwayAverage:   g.AwayAverage,
			HomeCheckouts: g.HomeCheckouts,
			AwayCheckouts: g.AwayCheckouts,
		}
		copy(pair.HomePlayers[:], g.HomePlayers)
		copy(pair.AwayPlayers[:], g.AwayPlayers)
		detail.Doubles = append(detail.Doubles, pair)
	}
	return detail
}
