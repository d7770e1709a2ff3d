/*
Copyright 2018 The nodeadm authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package swaptool turns swap off and on. The kubelet refuses to run
// with swap enabled, so init disables it and reset brings it back.
package swaptool

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	procSwapsPath = "/proc/swaps"
	fstabPath     = "/etc/fstab"

	disabledPrefix = "#nodeadm "
)

// Device is an active swap device as listed in /proc/swaps.
type Device struct {
	Filename string
	Type     string
}

type Controller struct {
	procSwapsPath string
	fstabPath     string
}

func New() *Controller {
	return &Controller{
		procSwapsPath: procSwapsPath,
		fstabPath:     fstabPath,
	}
}

// Disable turns off all active swap devices and comments out their
// fstab entries so the node stays swap-free across reboots.
func (c *Controller) Disable() error {
	devices, err := c.activeDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		if err := swapoff(dev.Filename); err != nil {
			return errors.Wrapf(err, "error disabling swap device %q", dev.Filename)
		}
	}
	return c.rewriteFstab(commentSwapEntries)
}

// Enable uncomments the fstab swap entries written by Disable and
// turns them back on.
func (c *Controller) Enable() error {
	if err := c.rewriteFstab(uncommentSwapEntries); err != nil {
		return err
	}
	fstab, err := ioutil.ReadFile(c.fstabPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "error reading %q", c.fstabPath)
	}
	for _, dev := range swapEntries(fstab) {
		// Swap files and LABEL/UUID entries are left to swapon -a at
		// next boot; only plain device paths are re-enabled here.
		if !strings.HasPrefix(dev, "/") {
			continue
		}
		if err := swapon(dev, 0); err != nil {
			return errors.Wrapf(err, "error enabling swap device %q", dev)
		}
	}
	return nil
}

func (c *Controller) activeDevices() ([]Device, error) {
	f, err := os.Open(c.procSwapsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %q", c.procSwapsPath)
	}
	defer f.Close()
	return parseProcSwaps(f)
}

func (c *Controller) rewriteFstab(rewrite func([]byte) []byte) error {
	fstab, err := ioutil.ReadFile(c.fstabPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "error reading %q", c.fstabPath)
	}
	rewritten := rewrite(fstab)
	if bytes.Equal(fstab, rewritten) {
		return nil
	}
	if err := ioutil.WriteFile(c.fstabPath, rewritten, 0644); err != nil {
		return errors.Wrapf(err, "error writing %q", c.fstabPath)
	}
	return nil
}

// x/sys/unix does not wrap swapon(2)/swapoff(2) on Linux, so call the
// raw syscalls directly.
func swapoff(path string) error {
	p, err := unix.BytePtrFromString(path)
	if err != nil {
		return err
	}
	_, _, errno := unix.Syscall(unix.SYS_SWAPOFF, uintptr(unsafe.Pointer(p)), 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func swapon(path string, flags int) error {
	p, err := unix.BytePtrFromString(path)
	if err != nil {
		return err
	}
	_, _, errno := unix.Syscall(unix.SYS_SWAPON, uintptr(unsafe.Pointer(p)), uintptr(flags), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// parseProcSwaps reads the /proc/swaps table. Example:
//
//	Filename          Type      Size    Used  Priority
//	/dev/sda2         partition 999420  0     -2
func parseProcSwaps(r io.Reader) ([]Device, error) {
	var devices []Device
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			// header line
			first = false
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.Errorf("unexpected /proc/swaps line %q", line)
		}
		devices = append(devices, Device{
			Filename: fields[0],
			Type:     fields[1],
		})
	}
	return devices, scanner.Err()
}

func isSwapLine(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 3 && fields[2] == "swap"
}

func commentSwapEntries(fstab []byte) []byte {
	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(fstab))
	for scanner.Scan() {
		line := scanner.Text()
		if isSwapLine(line) && !strings.HasPrefix(line, "#") {
			out.WriteString(disabledPrefix)
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

func uncommentSwapEntries(fstab []byte) []byte {
	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(fstab))
	for scanner.Scan() {
		line := scanner.Text()
		out.WriteString(strings.TrimPrefix(line, disabledPrefix))
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// swapEntries returns the device column of active swap lines.
func swapEntries(fstab []byte) []string {
	var devices []string
	scanner := bufio.NewScanner(bytes.NewReader(fstab))
	for scanner.Scan() {
		line := scanner.Text()
		if isSwapLine(line) && !strings.HasPrefix(line, "#") {
			devices = append(devices, strings.Fields(line)[0])
		}
	}
	return devices
}
