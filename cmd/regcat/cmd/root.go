// SPDX-License-Identifier: Apache-2.0 OR MIT

package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/chimeratk-go/regaccess/catalogue"
)

var rootCmd = &cobra.Command{
	Use:   "regcat",
	Short: "Inspect and exercise a regaccess map file",
	Long:  "regcat parses a ChimeraTK-style register map file and lets you dump its catalogue or read a register through one of the transport backends.",
}

// Execute adds all child commands to the root command and runs it. It is
// called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// stageError tags an error with the exit code owned by the pipeline stage
// that produced it: 1 for map-file parsing, 2 for transport open, 3 for
// anything after.
type stageError struct {
	code int
	err  error
}

func (s stageError) Error() string { return s.err.Error() }
func (s stageError) Unwrap() error { return s.err }

func stage(code int, err error) error {
	if err == nil {
		return nil
	}
	return stageError{code: code, err: err}
}

func exitCodeFor(err error) int {
	var s stageError
	if errors.As(err, &s) {
		return s.code
	}
	return 3
}

func init() {
	rootCmd.PersistentFlags().StringP("map", "m", "", "path to the map file")
	rootCmd.MarkPersistentFlagRequired("map")
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(readCmd)
}

func loadCatalogue(cmd *cobra.Command) (*catalogue.Catalogue, error) {
	path, _ := cmd.Flags().GetString("map")
	cat, err := catalogue.ParseFile(path)
	if err != nil {
		return nil, stage(1, err)
	}
	return cat, nil
}
