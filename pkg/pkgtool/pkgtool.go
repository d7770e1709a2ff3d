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

// Package pkgtool wraps the host package manager behind a common
// interface so that install and remove steps work the same way on
// apt and yum based distributions.
package pkgtool

import (
	"os"

	"github.com/pkg/errors"

	"github.com/clusterlite/nodeadm/pkg/exectool"
	"github.com/clusterlite/nodeadm/pkg/osrelease"
)

type Manager interface {
	Name() string
	Update() error
	Install(pkgs ...string) error
	Remove(pkgs ...string) error
}

// NewManager returns the package manager for the given OS family.
func NewManager(family osrelease.Family, runner exectool.Runner) (Manager, error) {
	switch family {
	case osrelease.FamilyDebian:
		return &aptManager{runner: runner}, nil
	case osrelease.FamilyRHEL:
		return &yumManager{runner: runner}, nil
	}
	return nil, errors.Errorf("no package manager for OS family %q", family)
}

type aptManager struct {
	runner exectool.Runner
}

// Debconf must not prompt during unattended provisioning.
var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

func (m *aptManager) Name() string { return "apt-get" }

func (m *aptManager) Update() error {
	return m.run("update")
}

func (m *aptManager) Install(pkgs ...string) error {
	return m.run(append([]string{"install", "-y"}, pkgs...)...)
}

func (m *aptManager) Remove(pkgs ...string) error {
	return m.run(append([]string{"purge", "-y"}, pkgs...)...)
}

func (m *aptManager) run(args ...string) error {
	if _, err := m.runner.RunCommand(os.Stdout, os.Stderr, aptEnv, "apt-get", args...); err != nil {
		return errors.Wrap(err, "apt-get failed")
	}
	return nil
}

type yumManager struct {
	runner exectool.Runner
}

func (m *yumManager) Name() string { return "yum" }

func (m *yumManager) Update() error {
	return m.run("makecache")
}

func (m *yumManager) Install(pkgs ...string) error {
	return m.run(append([]string{"install", "-y"}, pkgs...)...)
}

func (m *yumManager) Remove(pkgs ...string) error {
	return m.run(append([]string{"remove", "-y"}, pkgs...)...)
}

func (m *yumManager) run(args ...string) error {
	if _, err := m.runner.RunCommand(os.Stdout, os.Stderr, nil, "yum", args...); err != nil {
		return errors.Wrap(err, "yum failed")
	}
	return nil
}
