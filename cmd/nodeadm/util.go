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

package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/clusterlite/nodeadm/pkg/config"
	"github.com/clusterlite/nodeadm/pkg/discovery"
	"github.com/clusterlite/nodeadm/pkg/exectool"
	"github.com/clusterlite/nodeadm/pkg/kubetool"
	"github.com/clusterlite/nodeadm/pkg/osrelease"
	"github.com/clusterlite/nodeadm/pkg/pkgtool"
	"github.com/clusterlite/nodeadm/pkg/provision"
	"github.com/clusterlite/nodeadm/pkg/runtimetool"
	"github.com/clusterlite/nodeadm/pkg/servicetool"
	"github.com/clusterlite/nodeadm/pkg/swaptool"
)

func requireRoot() {
	if err := checkRoot(os.Geteuid()); err != nil {
		log.Fatal(err)
	}
}

func checkRoot(euid int) error {
	if euid != 0 {
		return errors.New("nodeadm must be run as root")
	}
	return nil
}

// newNodeConfig builds the node configuration from the current flag
// and config settings plus a fresh OS detection.
func newNodeConfig() *config.NodeConfiguration {
	cfg := &config.NodeConfiguration{
		Name:              viper.GetString("node-name"),
		StateDir:          viper.GetString("dir"),
		KubernetesVersion: viper.GetString("kubernetes-version"),
		ContainerRuntime:  viper.GetString("container-runtime"),
		DiscoveryURL:      viper.GetString("discovery-url"),
		APIServerEndpoint: viper.GetString("api-server-endpoint"),
	}

	info, err := osrelease.Detect()
	if err != nil {
		log.Fatalf("Failed to detect operating system: %v", err)
	}
	log.Printf("Detected %s %s", info.Name, info.VersionID)

	cfg.OS = config.OSConfiguration{
		ID:        info.ID,
		Name:      info.Name,
		VersionID: info.VersionID,
		Family:    string(info.Family()),
	}
	return cfg
}

// loadNodeConfig returns the configuration recorded by a previous
// init, falling back to a fresh detection when there is none.
func loadNodeConfig() *config.NodeConfiguration {
	cfg, err := config.LoadConfig()
	if err != nil {
		if !config.IsNotFound(err) {
			log.Fatalf("Failed to load node config: %v", err)
		}
		return newNodeConfig()
	}
	if cfg.OS.Family == "" {
		return newNodeConfig()
	}
	return cfg
}

func newProvisioner(cfg *config.NodeConfiguration) *provision.Provisioner {
	runner := exectool.New()

	family := osrelease.Family(cfg.OS.Family)
	packages, err := pkgtool.NewManager(family, runner)
	if err != nil {
		log.Fatalf("Cannot provision this host: %v", err)
	}
	services := servicetool.New(runner)

	p, err := provision.New(cfg, provision.Deps{
		Packages:  packages,
		Services:  services,
		Runtime:   runtimetool.New(family, packages, services),
		Swap:      swaptool.New(),
		Discovery: discovery.New(cfg.DiscoveryURL),
		Cluster:   kubetool.New(runner),
	})
	if err != nil {
		log.Fatalf("Failed to create provisioner: %v", err)
	}
	return p
}
