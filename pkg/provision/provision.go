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

// Package provision runs the node lifecycle sequences. All host
// interaction goes through the injected capabilities so that the
// ordering can be tested without touching the machine.
package provision

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/clusterlite/nodeadm/pkg/cninet"
	"github.com/clusterlite/nodeadm/pkg/config"
	"github.com/clusterlite/nodeadm/pkg/kubetool"
	"github.com/clusterlite/nodeadm/pkg/pkgtool"
	"github.com/clusterlite/nodeadm/pkg/servicetool"
)

const (
	kubeletService = "kubelet.service"

	nodeReadyTimeout = 5 * time.Minute
)

var kubePackages = []string{"kubelet", "kubeadm", "kubectl"}

type RuntimeInstaller interface {
	Install() error
	Remove() error
}

type SwapController interface {
	Disable() error
	Enable() error
}

// TokenSource provides the kubeadm bootstrap credentials.
type TokenSource interface {
	Token() (string, error)
	CACertHash() (string, error)
}

type ClusterTool interface {
	Join(opts kubetool.JoinOptions) error
	Reset() error
	Nodes() (string, error)
	WaitNodeReady(nodeName string, timeout time.Duration) error
}

// Deps are the injected capabilities the provisioner drives.
type Deps struct {
	Packages  pkgtool.Manager
	Services  servicetool.Manager
	Runtime   RuntimeInstaller
	Swap      SwapController
	Discovery TokenSource
	Cluster   ClusterTool

	// WriteNetConf defaults to cninet.WriteNetConf.
	WriteNetConf func() error
}

type Provisioner struct {
	cfg  *config.NodeConfiguration
	deps Deps
}

func New(cfg *config.NodeConfiguration, deps Deps) (*Provisioner, error) {
	if deps.Packages == nil || deps.Services == nil || deps.Runtime == nil ||
		deps.Swap == nil || deps.Discovery == nil || deps.Cluster == nil {
		return nil, errors.New("provisioner is missing a capability")
	}
	if deps.WriteNetConf == nil {
		deps.WriteNetConf = cninet.WriteNetConf
	}
	return &Provisioner{
		cfg:  cfg,
		deps: deps,
	}, nil
}

// Init provisions the node and joins it to the cluster. Steps run in
// fixed order and the first failure aborts the sequence.
func (p *Provisioner) Init() error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	log.Printf("Refreshing %s package index ...", p.deps.Packages.Name())
	if err := p.deps.Packages.Update(); err != nil {
		return errors.Wrap(err, "error updating package index")
	}

	log.Print("Installing container runtime ...")
	if err := p.deps.Runtime.Install(); err != nil {
		return errors.Wrap(err, "error installing container runtime")
	}

	log.Printf("Installing Kubernetes node packages %v ...", kubePackages)
	if err := p.deps.Packages.Install(kubePackages...); err != nil {
		return errors.Wrap(err, "error installing Kubernetes packages")
	}
	if err := p.deps.Services.Enable(kubeletService); err != nil {
		return errors.Wrapf(err, "error enabling %s", kubeletService)
	}

	log.Print("Disabling swap ...")
	if err := p.deps.Swap.Disable(); err != nil {
		return errors.Wrap(err, "error disabling swap")
	}

	log.Print("Writing CNI network configuration ...")
	if err := p.deps.WriteNetConf(); err != nil {
		return errors.Wrap(err, "error writing CNI configuration")
	}

	log.Printf("Fetching join credentials from %s ...", p.cfg.DiscoveryURL)
	token, err := p.deps.Discovery.Token()
	if err != nil {
		return err
	}
	caCertHash, err := p.deps.Discovery.CACertHash()
	if err != nil {
		return err
	}

	log.Printf("Joining cluster at %s ...", p.cfg.APIServerEndpoint)
	err = p.deps.Cluster.Join(kubetool.JoinOptions{
		APIServerEndpoint: p.cfg.APIServerEndpoint,
		Token:             token,
		CACertHash:        caCertHash,
		NodeName:          p.cfg.Name,
	})
	if err != nil {
		return err
	}

	log.Printf("Waiting for node %q to become ready ...", p.cfg.Name)
	if err := p.deps.Cluster.WaitNodeReady(p.cfg.Name, nodeReadyTimeout); err != nil {
		return err
	}

	nodes, err := p.deps.Cluster.Nodes()
	if err != nil {
		return err
	}
	fmt.Print(nodes)

	log.Printf("Node %q joined the cluster", p.cfg.Name)
	return nil
}

// Reset removes the node from the cluster and undoes the init steps
// in reverse order.
func (p *Provisioner) Reset() error {
	log.Print("Resetting kubeadm state ...")
	if err := p.deps.Cluster.Reset(); err != nil {
		return err
	}

	log.Printf("Stopping %s ...", kubeletService)
	if err := p.deps.Services.Stop(kubeletService); err != nil {
		return errors.Wrapf(err, "error stopping %s", kubeletService)
	}
	if err := p.deps.Services.Disable(kubeletService); err != nil {
		return errors.Wrapf(err, "error disabling %s", kubeletService)
	}

	log.Printf("Removing Kubernetes node packages %v ...", kubePackages)
	if err := p.deps.Packages.Remove(kubePackages...); err != nil {
		return errors.Wrap(err, "error removing Kubernetes packages")
	}

	log.Print("Removing container runtime ...")
	if err := p.deps.Runtime.Remove(); err != nil {
		return errors.Wrap(err, "error removing container runtime")
	}

	log.Print("Re-enabling swap ...")
	if err := p.deps.Swap.Enable(); err != nil {
		return errors.Wrap(err, "error enabling swap")
	}

	log.Print("Node reset")
	return nil
}
