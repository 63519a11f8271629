package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/logger"
)

func newCreateCmd(a *app) *cobra.Command {
	var in domain.NewLink

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tracking link",
		Example: `  click-tracker create --url="https://example.com/landing"
  click-tracker create --url="https://example.com" --code=promo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Store()
			if err != nil {
				return err
			}

			link, err := services.NewLinkService(store, a.options()...).CreateLink(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\n", link.ID)
			fmt.Fprintf(out, "Code: %s\n", link.ShortCode)
			fmt.Fprintf(out, "URL: %s/open/%s\n", a.cfg.BaseURL, link.ShortCode)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.OriginalURL, "url", "", "destination URL (required)")
	cmd.Flags().StringVar(&in.ShortCode, "code", "", "custom short code")
	cmd.Flags().StringVar(&in.Title, "title", "", "link title")
	cmd.Flags().StringVar(&in.Description, "description", "", "link description")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newExportLinksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export-links",
		Short: "Dump every link as JSON to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Store()
			if err != nil {
				return err
			}
			links, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list links: %w", err)
			}
			if links == nil {
				links = []domain.Link{}
			}
			return writeIndentedJSON(cmd.OutOrStdout(), links)
		},
	}
}

// linkRecord is one entry of a link dump. An absent is_active means active.
type linkRecord struct {
	domain.Link
	IsActive *bool `json:"is_active"`
}

func newImportLinksCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import-links",
		Short: "Load links from a JSON dump, skipping invalid or taken entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			var records []linkRecord
			if err := json.NewDecoder(f).Decode(&records); err != nil {
				return fmt.Errorf("decode %s: %w", file, err)
			}

			store, err := a.Store()
			if err != nil {
				return err
			}
			svc := services.NewLinkService(store, a.options()...)

			ctx := cmd.Context()
			imported := 0
			for _, rec := range records {
				l := rec.Link
				l.IsActive = rec.IsActive == nil || *rec.IsActive

				_, err := svc.ImportLink(ctx, l)
				switch {
				case errors.Is(err, domain.ErrDuplicateCode), errors.Is(err, domain.ErrDuplicateID):
					logger.Warn().Str("id", l.ID).Str("short_code", l.ShortCode).Msg("Skipping existing link")
				case errors.Is(err, domain.ErrInvalidURL), errors.Is(err, domain.ErrInvalidCode):
					logger.Warn().Err(err).Str("id", l.ID).Str("short_code", l.ShortCode).Msg("Skipping invalid link")
				case err != nil:
					logger.Error().Err(err).Str("short_code", l.ShortCode).Msg("Failed to import link")
				default:
					imported++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d links\n", imported, len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file to import (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
