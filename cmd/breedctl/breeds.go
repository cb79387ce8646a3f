package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
)

func newBreedsCmd(opts *cliOptions) *cobra.Command {
	breedsCmd := &cobra.Command{
		Use:   "breeds",
		Short: "List or look up breeds",
	}

	var pageSize int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			catalog, err := opts.acquirer.FetchCatalog(ctx, pageSize)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if err := writeJSON(out, catalog.Breeds); err != nil {
					return err
				}
			} else if err := writeBreedTable(out, catalog.Breeds); err != nil {
				return err
			}
			if !catalog.Complete() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d of %d pages could not be fetched: %v\n",
					len(catalog.SkippedPages), catalog.TotalPages, catalog.SkippedPages)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&pageSize, "page-size", 0, "Records per page (default from config)")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Look up one breed by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			b, err := opts.acquirer.Lookup(ctx, args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), b)
			}
			return writeBreedDetail(cmd.OutOrStdout(), b)
		},
	}

	breedsCmd.AddCommand(listCmd, getCmd)
	return breedsCmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeBreedTable(w io.Writer, breeds []breed.Breed) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLIFE")
	for _, b := range breeds {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.Name, lifeSpan(b))
	}
	return tw.Flush()
}

func writeBreedDetail(w io.Writer, b breed.Breed) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", b.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", b.Name)
	fmt.Fprintf(tw, "Life:\t%s\n", lifeSpan(b))
	if b.ImageURL != nil {
		fmt.Fprintf(tw, "Image:\t%s\n", *b.ImageURL)
	}
	fmt.Fprintf(tw, "Description:\t%s\n", b.Description)
	return tw.Flush()
}

func lifeSpan(b breed.Breed) string {
	num := func(v *int) string {
		if v == nil {
			return "?"
		}
		return strconv.Itoa(*v)
	}
	if b.LifeExpectancyMin == nil && b.LifeExpectancyMax == nil {
		return "-"
	}
	return num(b.LifeExpectancyMin) + "-" + num(b.LifeExpectancyMax) + " years"
}
