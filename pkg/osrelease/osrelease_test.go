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

package osrelease

import (
	"strings"
	"testing"
)

const ubuntuOSRelease = `NAME="Ubuntu"
VERSION="18.04.3 LTS (Bionic Beaver)"
ID=ubuntu
ID_LIKE=debian
PRETTY_NAME="Ubuntu 18.04.3 LTS"
VERSION_ID="18.04"
`

const centosOSRelease = `NAME="CentOS Linux"
VERSION="7 (Core)"
ID="centos"
ID_LIKE="rhel fedora"
VERSION_ID="7"
PRETTY_NAME="CentOS Linux 7 (Core)"
`

func TestParse(t *testing.T) {
	testCases := []struct {
		input             string
		expectedID        string
		expectedName      string
		expectedVersionID string
		expectedFamily    Family
	}{
		{
			input:             ubuntuOSRelease,
			expectedID:        "ubuntu",
			expectedName:      "Ubuntu",
			expectedVersionID: "18.04",
			expectedFamily:    FamilyDebian,
		},
		{
			input:             centosOSRelease,
			expectedID:        "centos",
			expectedName:      "CentOS Linux",
			expectedVersionID: "7",
			expectedFamily:    FamilyRHEL,
		},
		{
			input:             "NAME=\"Arch Linux\"\nID=arch\n",
			expectedID:        "arch",
			expectedName:      "Arch Linux",
			expectedVersionID: "",
			expectedFamily:    FamilyUnknown,
		},
	}

	for i, tc := range testCases {
		info, err := Parse(strings.NewReader(tc.input))
		if err != nil {
			t.Fatalf("test case %d: unexpected error: %v", i, err)
		}
		if info.ID != tc.expectedID {
			t.Errorf("test case %d: expected ID %q, got %q", i, tc.expectedID, info.ID)
		}
		if info.Name != tc.expectedName {
			t.Errorf("test case %d: expected Name %q, got %q", i, tc.expectedName, info.Name)
		}
		if info.VersionID != tc.expectedVersionID {
			t.Errorf("test case %d: expected VersionID %q, got %q", i, tc.expectedVersionID, info.VersionID)
		}
		if info.Family() != tc.expectedFamily {
			t.Errorf("test case %d: expected family %q, got %q", i, tc.expectedFamily, info.Family())
		}
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("# nothing here\n")); err == nil {
		t.Fatal("expected error for release file without ID or NAME")
	}
}

func TestParseLSBRelease(t *testing.T) {
	input := `DISTRIB_ID=Ubuntu
DISTRIB_RELEASE=16.04
DISTRIB_CODENAME=xenial
DISTRIB_DESCRIPTION="Ubuntu 16.04.6 LTS"
`
	info, err := parseLSBRelease(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != "ubuntu" {
		t.Errorf("expected ID %q, got %q", "ubuntu", info.ID)
	}
	if info.VersionID != "16.04" {
		t.Errorf("expected VersionID %q, got %q", "16.04", info.VersionID)
	}
	if info.Family() != FamilyDebian {
		t.Errorf("expected family %q, got %q", FamilyDebian, info.Family())
	}
}

func TestParseRedhatRelease(t *testing.T) {
	info, err := parseRedhatRelease(strings.NewReader("CentOS Linux release 7.9.2009 (Core)\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "CentOS Linux" {
		t.Errorf("expected Name %q, got %q", "CentOS Linux", info.Name)
	}
	if info.VersionID != "7.9.2009" {
		t.Errorf("expected VersionID %q, got %q", "7.9.2009", info.VersionID)
	}
	if info.Family() != FamilyRHEL {
		t.Errorf("expected family %q, got %q", FamilyRHEL, info.Family())
	}

	if _, err := parseRedhatRelease(strings.NewReader("garbage\n")); err == nil {
		t.Fatal("expected error for unrecognized redhat-release line")
	}
}

func TestFamilyIDLike(t *testing.T) {
	testCases := []struct {
		id             string
		idLike         []string
		expectedFamily Family
	}{
		{"linuxmint", []string{"ubuntu", "debian"}, FamilyDebian},
		{"rocky", []string{"rhel", "centos", "fedora"}, FamilyRHEL},
		{"opensuse", []string{"suse"}, FamilyUnknown},
	}
	for i, tc := range testCases {
		info := &Info{ID: tc.id, IDLike: tc.idLike}
		if info.Family() != tc.expectedFamily {
			t.Errorf("test case %d: expected family %q, got %q", i, tc.expectedFamily, info.Family())
		}
	}
}
