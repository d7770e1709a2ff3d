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

// Package kubetool drives kubeadm and kubectl on the node.
package kubetool

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/clusterlite/nodeadm/pkg/exectool"
)

// kubelet.conf is the only kubeconfig present on a worker node.
const kubeletKubeconfig = "/etc/kubernetes/kubelet.conf"

type JoinOptions struct {
	APIServerEndpoint string
	Token             string
	CACertHash        string
	NodeName          string
}

type Tool struct {
	runner exectool.Runner
}

func New(runner exectool.Runner) *Tool {
	return &Tool{runner: runner}
}

// Join runs kubeadm join against the configured control plane.
func (t *Tool) Join(opts JoinOptions) error {
	if opts.APIServerEndpoint == "" {
		return errors.New("no API server endpoint given")
	}
	if opts.Token == "" || opts.CACertHash == "" {
		return errors.New("bootstrap token and CA cert hash are required to join")
	}

	args := []string{
		"join",
		"--token", opts.Token,
		"--discovery-token-ca-cert-hash", opts.CACertHash,
	}
	if opts.NodeName != "" {
		args = append(args, "--node-name", opts.NodeName)
	}
	args = append(args, opts.APIServerEndpoint)

	if _, err := t.runner.RunCommand(os.Stdout, os.Stderr, nil, "kubeadm", args...); err != nil {
		return errors.Wrap(err, "kubeadm join failed")
	}
	return nil
}

// Reset reverts everything kubeadm join did on the node.
func (t *Tool) Reset() error {
	if _, err := t.runner.RunCommand(os.Stdout, os.Stderr, nil, "kubeadm", "reset", "--force"); err != nil {
		return errors.Wrap(err, "kubeadm reset failed")
	}
	return nil
}

// Nodes returns the kubectl get nodes output.
func (t *Tool) Nodes() (string, error) {
	out, err := t.runner.RunCommand(nil, nil, nil, "kubectl",
		"--kubeconfig", kubeletKubeconfig, "get", "nodes")
	if err != nil {
		return "", errors.Wrap(err, "kubectl get nodes failed")
	}
	return string(out), nil
}

// WaitNodeReady polls the node object until its Ready condition turns
// True or the timeout expires.
func (t *Tool) WaitNodeReady(nodeName string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		out, err := t.runner.RunCommand(nil, nil, nil, "kubectl",
			"--kubeconfig", kubeletKubeconfig,
			"get", "node", nodeName,
			"-o", `jsonpath={.status.conditions[?(@.type=="Ready")].status}`)
		if err == nil && strings.TrimSpace(string(out)) == "True" {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return errors.Wrapf(err, "node %q not ready after %v", nodeName, timeout)
			}
			return errors.Errorf("node %q not ready after %v", nodeName, timeout)
		}
		time.Sleep(5 * time.Second)
	}
}
