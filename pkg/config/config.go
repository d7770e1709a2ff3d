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

package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/clusterlite/nodeadm/pkg/kubetool"
)

const RuntimeDocker = "docker"

// NodeConfiguration describes how a single node is provisioned. It is
// written to the state dir on init so that reset can revert exactly
// what init did.
type NodeConfiguration struct {
	Name              string          `toml:"node-name" mapstructure:"node-name"`
	StateDir          string          `toml:"dir" mapstructure:"dir"`
	KubernetesVersion string          `toml:"kubernetes-version" mapstructure:"kubernetes-version"`
	ContainerRuntime  string          `toml:"container-runtime" mapstructure:"container-runtime"`
	DiscoveryURL      string          `toml:"discovery-url" mapstructure:"discovery-url"`
	APIServerEndpoint string          `toml:"api-server-endpoint" mapstructure:"api-server-endpoint"`
	OS                OSConfiguration `toml:"os" mapstructure:"os"`
}

// OSConfiguration is the snapshot of the detected operating system
// taken at init time.
type OSConfiguration struct {
	ID        string `toml:"id" mapstructure:"id"`
	Name      string `toml:"name" mapstructure:"name"`
	VersionID string `toml:"version-id" mapstructure:"version-id"`
	Family    string `toml:"family" mapstructure:"family"`
}

func (cfg *NodeConfiguration) Validate() error {
	// empty when os.Hostname failed and no --node-name was given
	if cfg.Name == "" {
		return errors.New("node name is required, set --node-name")
	}
	if cfg.ContainerRuntime != RuntimeDocker {
		return errors.Errorf("unsupported container runtime %q, only %q is supported", cfg.ContainerRuntime, RuntimeDocker)
	}
	if cfg.KubernetesVersion != "" && !kubetool.IsSupportedVersion(cfg.KubernetesVersion) {
		return errors.Errorf("kubernetes version %q not supported, minimum is %q", cfg.KubernetesVersion, kubetool.MinKubernetesVersion)
	}
	if !strings.HasPrefix(cfg.DiscoveryURL, "http://") && !strings.HasPrefix(cfg.DiscoveryURL, "https://") {
		return errors.Errorf("discovery url %q must be an http or https URL", cfg.DiscoveryURL)
	}
	if cfg.APIServerEndpoint == "" {
		return errors.New("api-server-endpoint is required")
	}
	return nil
}
