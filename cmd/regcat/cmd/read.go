// SPDX-License-Identifier: Apache-2.0 OR MIT

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/chimeratk-go/regaccess/accessor"
	"github.com/chimeratk-go/regaccess/codec"
	"github.com/chimeratk-go/regaccess/transport/dummy"
	"github.com/chimeratk-go/regaccess/transport/rebot"
	"github.com/chimeratk-go/regaccess/transport/uio"
)

var readCmd = &cobra.Command{
	Use:   "read [flags] register-path",
	Short: "Read a register through a transport backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalogue(cmd)
		if err != nil {
			return err
		}

		info, err := cat.Lookup(args[0])
		if err != nil {
			return stage(3, err)
		}

		window, closeFn, err := openTransport(cmd)
		if err != nil {
			return stage(2, err)
		}
		defer closeFn()

		acc, err := accessor.New(info, window, codec.Uint32, false)
		if err != nil {
			return stage(3, err)
		}

		values, err := acc.Read()
		if err != nil {
			return stage(3, err)
		}
		for _, v := range values {
			fmt.Fprintln(cmd.OutOrStdout(), v.Uint64())
		}
		return nil
	},
}

func init() {
	readCmd.Flags().String("transport", "dummy", `transport backend: "dummy", "uio" or "remote"`)
	readCmd.Flags().String("device", "", `device path (uio) or "host:port" (remote)`)
}

// openTransport opens the accessor.RawWindow named by the --transport flag.
// The dummy backend is self-contained and used for smoke-testing a map
// file without any hardware; uio and remote reach an actual device.
func openTransport(cmd *cobra.Command) (accessor.RawWindow, func() error, error) {
	kind, _ := cmd.Flags().GetString("transport")
	device, _ := cmd.Flags().GetString("device")

	switch kind {
	case "dummy":
		d, err := dummy.New(dummy.WithBar(0, dummy.NewBar(1<<16)))
		if err != nil {
			return nil, nil, err
		}
		return d, func() error { return nil }, nil
	case "uio":
		d, err := uio.Open(device)
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	case "remote":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := rebot.Dial(ctx, device)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, errors.Errorf("unknown transport %q", kind)
	}
}
