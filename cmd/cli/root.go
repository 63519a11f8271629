package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/config"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

type storeOpener func() (ports.Store, error)

// app is shared by every subcommand. The store is opened lazily so --help
// never touches the database.
type app struct {
	cfg   *config.Config
	open  storeOpener
	store ports.Store
}

func (a *app) Store() (ports.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := a.open()
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) options() []services.Option {
	return []services.Option{
		services.WithCodeLength(a.cfg.ShortCodeLength),
		services.WithMaxAttempts(a.cfg.ShortCodeMaxAttempts),
	}
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func newRootCmd(cfg *config.Config, open storeOpener) *cobra.Command {
	a := &app{cfg: cfg, open: open}

	root := &cobra.Command{
		Use:           "click-tracker",
		Short:         "Manage tracking links and their recorded clicks",
		SilenceUsage:  true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.AddCommand(
		newCreateCmd(a),
		newExportLinksCmd(a),
		newImportLinksCmd(a),
		newExportEventsCmd(a),
		newSummaryCmd(a),
	)
	return root
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
