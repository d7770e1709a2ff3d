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

// Package osrelease detects the operating system the node runs on by
// inspecting the system release files in priority order.
package osrelease

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Family classifies a distribution by the package manager it uses.
type Family string

const (
	FamilyDebian  Family = "debian"
	FamilyRHEL    Family = "rhel"
	FamilyUnknown Family = "unknown"
)

// Info holds the fields parsed from the release files.
type Info struct {
	ID         string
	IDLike     []string
	Name       string
	PrettyName string
	VersionID  string
}

// Release file candidates, in priority order.
var releaseFiles = []struct {
	path  string
	parse func(io.Reader) (*Info, error)
}{
	{"/etc/os-release", Parse},
	{"/usr/lib/os-release", Parse},
	{"/etc/lsb-release", parseLSBRelease},
	{"/etc/redhat-release", parseRedhatRelease},
}

// Detect inspects the release files and returns the distribution info.
// The result is stable across repeated calls on the same host.
func Detect() (*Info, error) {
	for _, rf := range releaseFiles {
		f, err := os.Open(rf.path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "error opening %q", rf.path)
		}
		info, err := rf.parse(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing %q", rf.path)
		}
		return info, nil
	}
	return nil, errors.New("no supported release file found")
}

// Family maps the distribution to a package-manager family. The ID is
// checked first, then ID_LIKE, so derivatives like Linux Mint or Rocky
// end up in the right branch.
func (i *Info) Family() Family {
	ids := append([]string{i.ID}, i.IDLike...)
	for _, id := range ids {
		switch strings.ToLower(id) {
		case "debian", "ubuntu":
			return FamilyDebian
		case "rhel", "centos", "fedora", "amzn":
			return FamilyRHEL
		}
	}
	return FamilyUnknown
}

// Parse reads os-release(5) formatted KEY=value lines.
func Parse(r io.Reader) (*Info, error) {
	info := &Info{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := parts[0]
		value := unquote(parts[1])
		switch key {
		case "ID":
			info.ID = value
		case "ID_LIKE":
			info.IDLike = strings.Fields(value)
		case "NAME":
			info.Name = value
		case "PRETTY_NAME":
			info.PrettyName = value
		case "VERSION_ID":
			info.VersionID = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if info.ID == "" && info.Name == "" {
		return nil, errors.New("release file contains no ID or NAME field")
	}
	return info, nil
}

func parseLSBRelease(r io.Reader) (*Info, error) {
	info := &Info{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.SplitN(strings.TrimSpace(scanner.Text()), "=", 2)
		if len(parts) != 2 {
			continue
		}
		value := unquote(parts[1])
		switch parts[0] {
		case "DISTRIB_ID":
			info.Name = value
			info.ID = strings.ToLower(value)
		case "DISTRIB_RELEASE":
			info.VersionID = value
		case "DISTRIB_DESCRIPTION":
			info.PrettyName = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, errors.New("lsb-release file contains no DISTRIB_ID field")
	}
	return info, nil
}

// Example: "CentOS Linux release 7.9.2009 (Core)"
var redhatReleaseRegexp = regexp.MustCompile(`^(.+?)\s+release\s+([\d.]+)`)

func parseRedhatRelease(r io.Reader) (*Info, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("redhat-release file is empty")
	}
	line := strings.TrimSpace(scanner.Text())
	m := redhatReleaseRegexp.FindStringSubmatch(line)
	if m == nil {
		return nil, errors.Errorf("unrecognized redhat-release line %q", line)
	}
	return &Info{
		ID:         "rhel",
		IDLike:     []string{"fedora"},
		Name:       m[1],
		PrettyName: line,
		VersionID:  m[2],
	}, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}
