// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package discovery hands out and tracks stable identifiers for the
// devices a process has opened, keyed by their catalogue. It has no
// notion of scanning a bus or a network — "discovery" here is limited to
// letting a CLI or log line refer to a device by a short, stable id
// instead of repeating its map-file path.
package discovery
