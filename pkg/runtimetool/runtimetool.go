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

// Package runtimetool installs and removes the container runtime the
// kubelet needs on the node.
package runtimetool

import (
	"github.com/pkg/errors"

	"github.com/clusterlite/nodeadm/pkg/osrelease"
	"github.com/clusterlite/nodeadm/pkg/pkgtool"
	"github.com/clusterlite/nodeadm/pkg/servicetool"
)

const dockerService = "docker.service"

// Tool installs the docker runtime with the host package manager and
// brings its service up.
type Tool struct {
	family   osrelease.Family
	packages pkgtool.Manager
	services servicetool.Manager
}

func New(family osrelease.Family, packages pkgtool.Manager, services servicetool.Manager) *Tool {
	return &Tool{
		family:   family,
		packages: packages,
		services: services,
	}
}

// The docker package is named differently in the Debian and RHEL
// family repositories.
func (t *Tool) runtimePackage() (string, error) {
	switch t.family {
	case osrelease.FamilyDebian:
		return "docker.io", nil
	case osrelease.FamilyRHEL:
		return "docker", nil
	}
	return "", errors.Errorf("no container runtime package for OS family %q", t.family)
}

// Install installs the runtime package, enables the service and waits
// for it to report active.
func (t *Tool) Install() error {
	pkg, err := t.runtimePackage()
	if err != nil {
		return err
	}
	if err := t.packages.Install(pkg); err != nil {
		return errors.Wrapf(err, "error installing %q", pkg)
	}
	if err := t.services.DaemonReload(); err != nil {
		return errors.Wrap(err, "error reloading service manager")
	}
	if err := t.services.Enable(dockerService); err != nil {
		return errors.Wrapf(err, "error enabling %s", dockerService)
	}
	if err := t.services.Start(dockerService); err != nil {
		return errors.Wrapf(err, "error starting %s", dockerService)
	}
	if !t.services.IsActive(dockerService) {
		return errors.Errorf("%s did not become active", dockerService)
	}
	return nil
}

// Remove stops the runtime service and removes the runtime package.
func (t *Tool) Remove() error {
	pkg, err := t.runtimePackage()
	if err != nil {
		return err
	}
	if t.services.IsActive(dockerService) {
		if err := t.services.Stop(dockerService); err != nil {
			return errors.Wrapf(err, "error stopping %s", dockerService)
		}
	}
	if err := t.services.Disable(dockerService); err != nil {
		return errors.Wrapf(err, "error disabling %s", dockerService)
	}
	if err := t.packages.Remove(pkg); err != nil {
		return errors.Wrapf(err, "error removing %q", pkg)
	}
	return nil
}
