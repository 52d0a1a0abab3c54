// Command itinerary is a terminal client for the trips API. It signs in,
// lists trips, and prints a trip's day-by-day itinerary as a table, CSV,
// JSON, or YAML.
//
// Settings come from flags, then ITINERARY_* environment variables, then the
// YAML config file that `itinerary login` writes.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-itinerary/internal/apiclient"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// fileConfig is the on-disk shape of the config file.
type fileConfig struct {
	API      string `yaml:"api"`
	Username string `yaml:"username,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// cli carries the resolved settings to every subcommand.
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "itinerary",
		Short:         "Browse trip itineraries from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfigFile()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", defaultConfigPath(), "config file")
	flags.String("api", "http://127.0.0.1:8000", "trips API base URL")
	flags.String("token", "", "trips API token (overrides the config file)")
	flags.StringP("output", "o", "table", "output format: table, csv, json, yaml")
	flags.Duration("timeout", 10*time.Second, "HTTP timeout")
	for _, name := range []string{"config", "api", "token", "output", "timeout"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	c.v.SetEnvPrefix("ITINERARY")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(c.loginCmd())
	root.AddCommand(c.logoutCmd())
	root.AddCommand(c.tripsCmd())
	root.AddCommand(c.showCmd())
	root.AddCommand(c.shareCmd())
	return root
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".itinerary.yaml"
	}
	return filepath.Join(dir, "trip-itinerary", "config.yaml")
}

// loadConfigFile merges the config file under flags and environment.
// A missing file is not an error.
func (c *cli) loadConfigFile() error {
	path := c.v.GetString("config")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	c.v.SetConfigFile(path)
	c.v.SetConfigType("yaml")
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// saveConfigFile writes cfg to the config path, readable only by the user
// since it holds the API token.
func (c *cli) saveConfigFile(cfg fileConfig) error {
	path := c.v.GetString("config")
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *cli) client() *apiclient.Client {
	return apiclient.New(c.v.GetString("api"), &http.Client{Timeout: c.v.GetDuration("timeout")})
}

func (c *cli) token() (string, error) {
	tok := c.v.GetString("token")
	if tok == "" {
		return "", errors.New("not logged in; run `itinerary login` or set ITINERARY_TOKEN")
	}
	return tok, nil
}
