// SPDX-License-Identifier: Apache-2.0 OR MIT

package uio

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// pageSize is the granularity at which the kernel exposes each UIO map
// through mmap's offset parameter: map N is found at file offset
// N*pageSize on the device node.
var pageSize = os.Getpagesize()

// mapInfo is the sysfs-published geometry of one UIO memory region, read
// from /sys/class/uio/uioN/maps/mapM/{addr,size}.
type mapInfo struct {
	addr uint64
	size uint64
}

func readMapInfo(sysfsPath string, index int) (mapInfo, error) {
	base := path.Join(sysfsPath, "maps", fmt.Sprintf("map%d", index))
	addrStr, err := readAttr(base, "addr")
	if err != nil {
		return mapInfo{}, err
	}
	sizeStr, err := readAttr(base, "size")
	if err != nil {
		return mapInfo{}, err
	}
	addr, err := strconv.ParseUint(addrStr, 0, 64)
	if err != nil {
		return mapInfo{}, errors.Wrapf(err, "uio: parsing addr of map%d", index)
	}
	size, err := strconv.ParseUint(sizeStr, 0, 64)
	if err != nil {
		return mapInfo{}, errors.Wrapf(err, "uio: parsing size of map%d", index)
	}
	return mapInfo{addr: addr, size: size}, nil
}

// readAttr reads a single-line sysfs attribute file.
func readAttr(p, attr string) (string, error) {
	data, err := os.ReadFile(path.Join(p, attr))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
