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

// Package cninet writes the default CNI network configuration for the
// node. The kubelet reports the node NotReady until a network config
// is present under /etc/cni/net.d.
package cninet

import (
	"encoding/json"
	"net"
	"path"

	cnitypes "github.com/containernetworking/cni/pkg/types"
	cniversion "github.com/containernetworking/cni/pkg/version"
	"github.com/pkg/errors"

	"github.com/clusterlite/nodeadm/pkg/utils/fs"
)

const (
	DefaultNetDir = "/etc/cni/net.d"

	bridgeConfFilename   = "10-nodeadm-net.conf"
	loopbackConfFilename = "99-loopback.conf"

	networkName   = "nodeadm-net"
	bridgeName    = "cni0"
	defaultSubnet = "10.244.0.0/16"
)

type ipamConfig struct {
	Type   string           `json:"type"`
	Subnet string           `json:"subnet,omitempty"`
	Routes []cnitypes.Route `json:"routes,omitempty"`
}

type netConf struct {
	CNIVersion string      `json:"cniVersion"`
	Name       string      `json:"name,omitempty"`
	Type       string      `json:"type"`
	Bridge     string      `json:"bridge,omitempty"`
	IsGateway  bool        `json:"isGateway,omitempty"`
	IPMasq     bool        `json:"ipMasq,omitempty"`
	IPAM       *ipamConfig `json:"ipam,omitempty"`
}

func defaultBridgeConf() *netConf {
	_, defaultRoute, _ := net.ParseCIDR("0.0.0.0/0")
	return &netConf{
		CNIVersion: cniversion.Current(),
		Name:       networkName,
		Type:       "bridge",
		Bridge:     bridgeName,
		IsGateway:  true,
		IPMasq:     true,
		IPAM: &ipamConfig{
			Type:   "host-local",
			Subnet: defaultSubnet,
			Routes: []cnitypes.Route{
				{Dst: *defaultRoute},
			},
		},
	}
}

func defaultLoopbackConf() *netConf {
	return &netConf{
		CNIVersion: cniversion.Current(),
		Type:       "loopback",
	}
}

// WriteNetConf writes the bridge and loopback configurations to the
// default CNI configuration directory.
func WriteNetConf() error {
	return WriteNetConfTo(DefaultNetDir)
}

func WriteNetConfTo(dir string) error {
	confs := []struct {
		filename string
		conf     *netConf
	}{
		{bridgeConfFilename, defaultBridgeConf()},
		{loopbackConfFilename, defaultLoopbackConf()},
	}
	for _, c := range confs {
		raw, err := json.MarshalIndent(c.conf, "", "    ")
		if err != nil {
			return errors.Wrapf(err, "error encoding CNI config %q", c.filename)
		}
		fpath := path.Join(dir, c.filename)
		if err := fs.CreateFileFromBytes(fpath, append(raw, '\n')); err != nil {
			return errors.Wrapf(err, "error writing %q", fpath)
		}
	}
	return nil
}
