// Command tamuctl is a terminal client for the school guest-log dashboard.
// It drives the same controller stack a graphical frontend would, against
// any backend speaking the dashboard API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sekolahdigital/tamuadmin/internal/api"
	"github.com/sekolahdigital/tamuadmin/internal/config"
	"github.com/sekolahdigital/tamuadmin/internal/session"
)

const usage = `Usage: tamuctl [-config path] <command> [options]

Commands:
  login      -email ... -password ...   authenticate and store the session
  logout                                revoke and clear the session
  whoami                                show the logged-in admin
  dashboard                             show counters and recent guests
  sync                                  trigger a manual attendance sync

  siswa | jabatan | pegawai | orangtua | bukutamu
             list [-search -page -rows ...]   list records
             get <id>                         show one record
             add [field flags]                create a record
             edit <id> [field flags]          update a record
             del <id> [-yes]                  delete a record (asks first)
`

// deps bundles what every command needs.
type deps struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tamuctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("tamuctl", flag.ExitOnError)
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := flags.String("config", defaultConfigPath(), "path to configuration file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	sessionPath := cfg.Session.FilePath
	if sessionPath == "" {
		sessionPath = filepath.Join(homeDir(), ".tamuadmin", "session.json")
	}
	store, err := session.NewStore(sessionPath)
	if err != nil {
		return err
	}

	client := api.New(
		cfg.API.BaseURL,
		config.Duration(cfg.API.Timeout, config.DefaultAPITimeout),
		store,
		api.WithUnauthorizedHook(func() {
			// Expired or revoked token: drop the session so the next
			// command starts from the login screen.
			_ = store.Clear()
			fmt.Fprintln(os.Stderr, "session expired, please login again")
		}),
	)

	d := &deps{cfg: cfg, store: store, client: client}
	ctx := context.Background()

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "login":
		return cmdLogin(ctx, d, cmdArgs)
	case "logout":
		return cmdLogout(ctx, d)
	case "whoami":
		return cmdWhoami(d)
	case "dashboard":
		return cmdDashboard(ctx, d)
	case "sync":
		return cmdSync(ctx, d)
	case "siswa", "jabatan", "pegawai", "orangtua", "bukutamu":
		return runResource(ctx, d, cmd, cmdArgs)
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("TAMUCTL_CONFIG"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
