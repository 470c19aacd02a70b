// SPDX-License-Identifier: Apache-2.0 OR MIT

package intc

import (
	"encoding/json"

	"github.com/chimeratk-go/regaccess/accessor"
	"github.com/chimeratk-go/regaccess/catalogue"
	"github.com/chimeratk-go/regaccess/codec"
	"github.com/chimeratk-go/regaccess/regerr"
	"github.com/chimeratk-go/regaccess/version"
)

// dummyConfig is the JSON payload the map file's INTERRUPT metadata carries
// for a "dummy" controller node: the module whose active_ints register
// this handler polls on Handle.
type dummyConfig struct {
	Module string `json:"module"`
}

// dummyHandler is the "dummy" built-in: it reads a 32-bit active_ints
// register and fires every line whose bit is set.
type dummyHandler struct {
	acc *accessor.Accessor
}

func newDummyHandler(cat *catalogue.Catalogue, window accessor.RawWindow, description string) (kindHandler, error) {
	var cfg dummyConfig
	if description != "" {
		if err := json.Unmarshal([]byte(description), &cfg); err != nil {
			return nil, regerr.InvalidArgument("dummy interrupt controller description is not valid JSON: %v", err)
		}
	}
	if cfg.Module == "" {
		return nil, regerr.Logic("dummy interrupt controller description must set \"module\"")
	}

	info, err := cat.Lookup(joinModulePath(cfg.Module, "active_ints"))
	if err != nil {
		return nil, err
	}
	acc, err := accessor.New(info, window, codec.Uint32, false)
	if err != nil {
		return nil, err
	}
	return &dummyHandler{acc: acc}, nil
}

func (d *dummyHandler) Handle(h *ControllerHandler, v version.Number) error {
	values, err := d.acc.Read()
	if err != nil {
		return err
	}
	mask := uint32(values[0].Uint64())
	for line := 0; line < 32; line++ {
		if mask&(1<<uint(line)) == 0 {
			continue
		}
		if err := h.fire(line, v); err != nil {
			return err
		}
	}
	return nil
}

func joinModulePath(module, name string) string {
	if module == "" {
		return name
	}
	return module + "/" + name
}
