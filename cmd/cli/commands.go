package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	fullSync bool
	season   string
)

func init() {
	syncCmd.Flags().BoolVar(&fullSync, "full", false, "Re-fetch the whole season instead of only new rounds")
	dashboardCmd.Flags().StringVar(&season, "season", "", "Season to show, defaults to the server's configured season")
	teamCmd.Flags().StringVar(&season, "season", "", "Season to show, defaults to the server's configured season")
	synclogsCmd.Flags().StringVar(&season, "season", "", "Season to show, defaults to the server's configured season")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(synclogsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a league sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/sync"
		if fullSync {
			endpoint += "?full=true"
		}
		return performPostRequest(endpoint)
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the league dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/dashboard" + seasonQuery())
	},
}

var teamCmd = &cobra.Command{
	Use:   "team [name]",
	Short: "Show one team's detail view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/team?name=" + url.QueryEscape(args[0])
		if season != "" {
			endpoint += "&season=" + url.QueryEscape(season)
		}
		return performGetRequest(endpoint)
	},
}

var synclogsCmd = &cobra.Command{
	Use:   "synclogs",
	Short: "List recent sync attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/synclogs" + seasonQuery())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func seasonQuery() string {
	if season == "" {
		return ""
	}
	return "?season=" + url.QueryEscape(season)
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
