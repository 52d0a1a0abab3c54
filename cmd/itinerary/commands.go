package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/itinerary"
	"github.com/pkordes/trip-itinerary/internal/printout"
)

func (c *cli) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the API token in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = c.v.GetString("password")
			}
			if strings.TrimSpace(username) == "" || password == "" {
				return fmt.Errorf("--username and --password (or ITINERARY_PASSWORD) are required")
			}
			sess, err := c.client().Login(cmd.Context(), strings.TrimSpace(username), password)
			if err != nil {
				return err
			}
			cfg := fileConfig{API: c.v.GetString("api"), Username: sess.Username, Token: sess.Token}
			if err := c.saveConfigFile(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.saveConfigFile(fileConfig{API: c.v.GetString("api")}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) tripsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trips",
		Short: "List your trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := c.token()
			if err != nil {
				return err
			}
			trips, err := c.client().ListTrips(cmd.Context(), tok)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format := c.v.GetString("output"); format {
			case "table":
				_, err = fmt.Fprintln(out, printout.TripTable(trips))
				return err
			case "json", "yaml":
				summaries := make([]tripSummary, 0, len(trips))
				for _, t := range trips {
					summaries = append(summaries, summarize(t))
				}
				return encode(out, format, summaries)
			default:
				return fmt.Errorf("output %q is not supported for trips", format)
			}
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Print a trip's itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid trip id %q", args[0])
			}
			tok, err := c.token()
			if err != nil {
				return err
			}
			trip, err := c.client().GetTrip(cmd.Context(), tok, id)
			if err != nil {
				return err
			}
			return c.printItinerary(cmd.OutOrStdout(), trip)
		},
	}
}

func (c *cli) shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <share-token>",
		Short: "Print a publicly shared itinerary (no login needed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := c.client().GetSharedTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printItinerary(cmd.OutOrStdout(), trip)
		},
	}
}

type tripSummary struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Destination string `json:"destination_city" yaml:"destination_city"`
	StartDate   string `json:"start_date" yaml:"start_date"`
	EndDate     string `json:"end_date" yaml:"end_date"`
	Span        int    `json:"span" yaml:"span"`
}

func summarize(t domain.Trip) tripSummary {
	return tripSummary{
		ID:          t.ID,
		Name:        t.Name,
		Destination: t.DestinationCity,
		StartDate:   t.StartDate.Format("2006-01-02"),
		EndDate:     t.EndDate.Format("2006-01-02"),
		Span:        itinerary.Span(t.StartDate, t.EndDate),
	}
}

// itineraryDoc is the JSON and YAML shape of a printed itinerary.
type itineraryDoc struct {
	tripSummary `yaml:",inline"`
	Activities  []printout.Row `json:"activities" yaml:"activities"`
}

func (c *cli) printItinerary(out io.Writer, trip domain.Trip) error {
	rows := printout.Rows(itinerary.Build(trip))

	switch format := c.v.GetString("output"); format {
	case "table":
		_, err := fmt.Fprintln(out, printout.Table(trip, rows))
		return err
	case "csv":
		return printout.WriteCSV(out, rows)
	case "json", "yaml":
		return encode(out, format, itineraryDoc{tripSummary: summarize(trip), Activities: rows})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encode(out io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
