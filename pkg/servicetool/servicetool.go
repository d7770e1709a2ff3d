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

// Package servicetool wraps systemctl.
package servicetool

import (
	"github.com/clusterlite/nodeadm/pkg/exectool"
)

type Manager interface {
	DaemonReload() error
	Enable(unit string) error
	Disable(unit string) error
	Start(unit string) error
	Stop(unit string) error
	Restart(unit string) error
	IsActive(unit string) bool
}

// Systemd manages units through systemctl.
type Systemd struct {
	runner exectool.Runner
}

func New(runner exectool.Runner) *Systemd {
	return &Systemd{runner: runner}
}

func (s *Systemd) systemctl(args ...string) error {
	_, err := s.runner.RunCommand(nil, nil, nil, "systemctl", args...)
	return err
}

func (s *Systemd) DaemonReload() error {
	return s.systemctl("daemon-reload")
}

func (s *Systemd) Enable(unit string) error {
	return s.systemctl("enable", unit)
}

func (s *Systemd) Disable(unit string) error {
	return s.systemctl("disable", unit)
}

func (s *Systemd) Start(unit string) error {
	return s.systemctl("start", unit)
}

func (s *Systemd) Stop(unit string) error {
	return s.systemctl("stop", unit)
}

func (s *Systemd) Restart(unit string) error {
	return s.systemctl("restart", unit)
}

func (s *Systemd) IsActive(unit string) bool {
	return s.systemctl("is-active", "--quiet", unit) == nil
}
