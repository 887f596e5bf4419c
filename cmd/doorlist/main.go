package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halverson/doorlist/internal/config"
	"github.com/halverson/doorlist/internal/store"
	"github.com/halverson/doorlist/internal/tui"
	"github.com/halverson/doorlist/pkg/ledger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("doorlist " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := store.Open(filepath.Join(cfg.DataDir, "doorlist.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	st := ledger.NewStore(db, cfg.EventName, cfg.Passphrase)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export-csv":
			return exportCSV(st, argOr(2, ledger.CSVFilename(time.Now())))
		case "export-json":
			return exportJSON(st, argOr(2, ledger.JSONFilename))
		case "import":
			if len(os.Args) < 3 {
				return fmt.Errorf("usage: doorlist import <file>")
			}
			return importFile(st, os.Args[2])
		default:
			printHelp()
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	_, err = tea.NewProgram(tui.NewApp(st), tea.WithAltScreen()).Run()
	return err
}

func argOr(i int, fallback string) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return fallback
}

func exportCSV(st *ledger.Store, path string) error {
	if err := os.WriteFile(path, []byte(ledger.EncodeCSV(st.All(), nil)), 0o644); err != nil {
		return err
	}
	fmt.Printf("exported %d records to %s\n", st.Len(), path)
	return nil
}

func exportJSON(st *ledger.Store, path string) error {
	if err := os.WriteFile(path, ledger.EncodeJSON(st.All()), 0o644); err != nil {
		return err
	}
	fmt.Printf("exported %d records to %s\n", st.Len(), path)
	return nil
}

func importFile(st *ledger.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := st.Import(data); err != nil {
		// a bad payload is ignored, not fatal: the ledger is unchanged
		fmt.Println("not a valid export, ledger unchanged")
		return nil
	}
	fmt.Printf("import merged, ledger now holds %d records\n", st.Len())
	return nil
}

func printHelp() {
	fmt.Print(`doorlist - event RSVP ledger and door check-in

Usage:
  doorlist                   open the TUI
  doorlist export-csv [file] write the ledger as delimited text
  doorlist export-json [file] write the ledger as a structured export
  doorlist import <file>     merge a structured export into the ledger
  doorlist version           print the version

Environment:
  DOORLIST_DATA_DIR    data directory (default ~/.doorlist)
  DOORLIST_EVENT_NAME  default event name for a fresh ledger
  DOORLIST_PASSPHRASE  default admin passphrase for a fresh ledger
`)
}
