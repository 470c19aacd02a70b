// SPDX-License-Identifier: Apache-2.0 OR MIT

// Command regcat parses a regaccess map file and either dumps its
// catalogue or exercises a register through one of the transport
// backends, exiting with a code tagged by the pipeline stage that failed:
// 0 success, 1 map-file error, 2 transport open failure, 3 runtime fault
// after open.
package main

import "github.com/chimeratk-go/regaccess/cmd/regcat/cmd"

func main() {
	cmd.Execute()
}
