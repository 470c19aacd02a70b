// SPDX-License-Identifier: Apache-2.0 OR MIT

package uio

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Device is a live UIO device: every memory region it exposes is mmap'd on
// Open and unmapped on Close. Regions are indexed the same way regaccess
// indexes a BAR, matching the order the kernel driver registers them in.
type Device struct {
	file *os.File
	w    windows
}

// Open maps every region exposed by the UIO device node at devPath (e.g.
// "/dev/uio0"), reading their geometry from the corresponding
// /sys/class/uio/uioN directory.
func Open(devPath string) (*Device, error) {
	return OpenWithSysfs(devPath, defaultSysfsPath(devPath))
}

// OpenWithSysfs is Open with an explicit sysfs directory, for systems where
// the uioN device number doesn't match the /dev node name.
func OpenWithSysfs(devPath, sysfsPath string) (*Device, error) {
	f, err := os.OpenFile(devPath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "uio: opening %s", devPath)
	}

	d := &Device{file: f, w: windows{bars: make(map[int][]byte)}}
	for i := 0; ; i++ {
		info, err := readMapInfo(sysfsPath, i)
		if err != nil {
			break
		}
		if info.size == 0 {
			break
		}
		mem, err := unix.Mmap(int(f.Fd()), int64(i)*int64(pageSize), int(info.size),
			unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			d.Close()
			return nil, errors.Wrapf(err, "uio: mmap map%d", i)
		}
		d.w.bars[i] = mem
	}
	if len(d.w.bars) == 0 {
		d.Close()
		return nil, errors.Errorf("uio: %s exposes no memory maps", devPath)
	}
	return d, nil
}

func defaultSysfsPath(devPath string) string {
	return path.Join("/sys/class/uio", path.Base(devPath))
}

// Close unmaps every region and closes the device file. Safe to call more
// than once.
func (d *Device) Close() error {
	d.w.mu.Lock()
	var firstErr error
	for i, mem := range d.w.bars {
		if err := unix.Munmap(mem); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(d.w.bars, i)
	}
	d.w.mu.Unlock()

	if d.file != nil {
		if err := d.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadWords implements accessor.RawWindow.
func (d *Device) ReadWords(bar int, address uint64, words []int32) error {
	return d.w.readWords(bar, address, words)
}

// WriteWords implements accessor.RawWindow.
func (d *Device) WriteWords(bar int, address uint64, words []int32) error {
	return d.w.writeWords(bar, address, words)
}
