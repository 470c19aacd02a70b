// SPDX-License-Identifier: Apache-2.0 OR MIT

package catalogue

import "github.com/chimeratk-go/regaccess/regerr"

var (
	errVoidReadOnly                = regerr.Logic("a VOID register cannot have access mode RO")
	errVoidNonZeroFields           = regerr.Logic("a VOID register must have all other fields zero")
	errChannelOffsetsNotIncreasing = regerr.Logic("2-D register channel bit offsets must be strictly increasing")
	errChannelWidthExceedsSpan     = regerr.Logic("2-D register channel width exceeds its available bit span")
	errNoChannels                  = regerr.Logic("2-D register must have at least one channel")
)
