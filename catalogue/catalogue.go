// SPDX-License-Identifier: Apache-2.0 OR MIT

package catalogue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chimeratk-go/regaccess/regerr"
)

// Catalogue is an immutable mapping from register path to RegisterInfo,
// built once by Parse and thereafter read-only.
type Catalogue struct {
	byPath   map[string]RegisterInfo
	order    []string
	metadata map[string]string
}

// NewCatalogue constructs an empty Catalogue. It is exported for backends
// that build a catalogue programmatically instead of from a map file (for
// example transport/dummy).
func NewCatalogue() *Catalogue {
	return &Catalogue{byPath: make(map[string]RegisterInfo), metadata: make(map[string]string)}
}

// addRegister inserts r, keyed by its Path. Paths must be unique.
func (c *Catalogue) addRegister(r RegisterInfo) error {
	if err := r.Validate(); err != nil {
		return err
	}
	key := normalizePath(r.Path)
	if _, exists := c.byPath[key]; exists {
		return regerr.Logic("duplicate register path %q", r.Path)
	}
	c.byPath[key] = r
	c.order = append(c.order, key)
	return nil
}

// AddRegister is the exported form of addRegister, for programmatic
// catalogue construction.
func (c *Catalogue) AddRegister(r RegisterInfo) error { return c.addRegister(r) }

// SetMetadata records a `@key value` directive.
func (c *Catalogue) SetMetadata(key, value string) { c.metadata[key] = value }

// Metadata returns the `@key value` directives collected while parsing.
func (c *Catalogue) Metadata() map[string]string {
	out := make(map[string]string, len(c.metadata))
	for k, v := range c.metadata {
		out[k] = v
	}
	return out
}

// normalizePath treats '.' as an alternate separator for '/', per §6.
func normalizePath(p string) string {
	return strings.ReplaceAll(p, ".", "/")
}

var barAddressRE = regexp.MustCompile(`^BAR/(\d+)/(\d+)(?:\*(\d+))?$`)

// Lookup returns the RegisterInfo for path, either from the persistent
// store or, for a numeric BAR/<bar>/<offset>[*<nBytes>] address, synthesized
// on demand as a 1-D int32 register without being added to the store.
func (c *Catalogue) Lookup(path string) (RegisterInfo, error) {
	if r, ok := c.byPath[normalizePath(path)]; ok {
		return r, nil
	}
	if m := barAddressRE.FindStringSubmatch(path); m != nil {
		return synthesizeBarRegister(path, m)
	}
	return RegisterInfo{}, regerr.Logic("unknown register %q", path)
}

func synthesizeBarRegister(path string, m []string) (RegisterInfo, error) {
	bar, _ := strconv.Atoi(m[1])
	offset, _ := strconv.ParseUint(m[2], 10, 64)
	nBytes := uint32(4)
	if m[3] != "" {
		v, err := strconv.ParseUint(m[3], 10, 32)
		if err != nil {
			return RegisterInfo{}, regerr.Logic("invalid nBytes in address %q", path)
		}
		nBytes = uint32(v)
	}
	if nBytes == 0 || nBytes%4 != 0 {
		return RegisterInfo{}, regerr.Logic("nBytes in address %q must be a non-zero multiple of 4", path)
	}
	return RegisterInfo{
		Path:      path,
		NElements: int(nBytes / 4),
		Address:   offset,
		NBytes:    nBytes,
		Bar:       bar,
		Width:     32,
		Signed:    true,
		Access:    ReadWrite,
		Type:      FixedPoint,
	}, nil
}

// Has reports whether path names a register in the persistent store (not
// counting synthesized BAR addresses).
func (c *Catalogue) Has(path string) bool {
	_, ok := c.byPath[normalizePath(path)]
	return ok
}

// Paths returns all persistent register paths in traversal (insertion)
// order.
func (c *Catalogue) Paths() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of persistent registers.
func (c *Catalogue) Len() int { return len(c.byPath) }

// InterruptIDs returns the set of all distinct interrupt ids referenced by
// registers in the catalogue, each rendered as its colon-joined string form.
func (c *Catalogue) InterruptIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, key := range c.order {
		r := c.byPath[key]
		if !r.IsAsync() {
			continue
		}
		id := InterruptIDString(r.InterruptID)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// InterruptIDString renders an interrupt id path as "ctrl:line:line...".
func InterruptIDString(id []int) string {
	parts := make([]string, len(id))
	for i, v := range id {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ":")
}
