// SPDX-License-Identifier: Apache-2.0 OR MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/discovery"
)

var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Dump the catalogue parsed from the map file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalogue(cmd)
		if err != nil {
			return err
		}

		if showID, _ := cmd.Flags().GetBool("id"); showID {
			path, _ := cmd.Flags().GetString("map")
			entry := discovery.NewRegistry().Register(path, cat)
			fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", entry.ID)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printCatalogueJSON(cmd, cat)
		}
		printCatalogueTable(cmd, cat)
		return nil
	},
}

func init() {
	catCmd.Flags().Bool("json", false, "dump as JSON instead of a table")
	catCmd.Flags().Bool("id", false, "print a discovery id for this catalogue")
}

type registerSummary struct {
	Path    string `json:"path"`
	Address uint64 `json:"address"`
	Bar     int    `json:"bar"`
	Bytes   uint32 `json:"bytes"`
	Access  string `json:"access"`
	Type    string `json:"type"`
}

func printCatalogueJSON(cmd *cobra.Command, cat *catalogue.Catalogue) error {
	out := make([]registerSummary, 0, cat.Len())
	for _, p := range cat.Paths() {
		info, err := cat.Lookup(p)
		if err != nil {
			return stage(3, err)
		}
		out = append(out, registerSummary{
			Path:    p,
			Address: info.Address,
			Bar:     info.Bar,
			Bytes:   info.NBytes,
			Access:  info.Access.String(),
			Type:    info.Type.String(),
		})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printCatalogueTable(cmd *cobra.Command, cat *catalogue.Catalogue) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tADDRESS\tBAR\tBYTES\tACCESS\tTYPE")
	for _, p := range cat.Paths() {
		info, err := cat.Lookup(p)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%#x\t%d\t%d\t%s\t%s\n", p, info.Address, info.Bar, info.NBytes, info.Access, info.Type)
	}
	w.Flush()
}
