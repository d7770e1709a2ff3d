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

package provision

import (
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/clusterlite/nodeadm/pkg/config"
	"github.com/clusterlite/nodeadm/pkg/kubetool"
)

const (
	testToken      = "abcdef.0123456789abcdef"
	testCACertHash = "sha256:cafe"
)

// recorder collects the call order across all fakes.
type recorder struct {
	calls []string
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

type fakePackages struct {
	rec  *recorder
	fail string
}

func (f *fakePackages) Name() string { return "fake" }

func (f *fakePackages) Update() error {
	f.rec.record("packages.update")
	if f.fail == "update" {
		return errors.New("update failed")
	}
	return nil
}

func (f *fakePackages) Install(pkgs ...string) error {
	f.rec.record("packages.install")
	return nil
}

func (f *fakePackages) Remove(pkgs ...string) error {
	f.rec.record("packages.remove")
	return nil
}

type fakeServices struct {
	rec *recorder
}

func (f *fakeServices) DaemonReload() error      { f.rec.record("services.daemon-reload"); return nil }
func (f *fakeServices) Enable(unit string) error { f.rec.record("services.enable " + unit); return nil }
func (f *fakeServices) Disable(unit string) error {
	f.rec.record("services.disable " + unit)
	return nil
}
func (f *fakeServices) Start(unit string) error   { f.rec.record("services.start " + unit); return nil }
func (f *fakeServices) Stop(unit string) error    { f.rec.record("services.stop " + unit); return nil }
func (f *fakeServices) Restart(unit string) error { f.rec.record("services.restart " + unit); return nil }
func (f *fakeServices) IsActive(unit string) bool { return true }

type fakeRuntime struct {
	rec  *recorder
	fail bool
}

func (f *fakeRuntime) Install() error {
	f.rec.record("runtime.install")
	if f.fail {
		return errors.New("runtime install failed")
	}
	return nil
}

func (f *fakeRuntime) Remove() error {
	f.rec.record("runtime.remove")
	return nil
}

type fakeSwap struct {
	rec *recorder
}

func (f *fakeSwap) Disable() error { f.rec.record("swap.disable"); return nil }
func (f *fakeSwap) Enable() error  { f.rec.record("swap.enable"); return nil }

type fakeDiscovery struct {
	rec *recorder
}

func (f *fakeDiscovery) Token() (string, error) {
	f.rec.record("discovery.token")
	return testToken, nil
}

func (f *fakeDiscovery) CACertHash() (string, error) {
	f.rec.record("discovery.ca-cert-hash")
	return testCACertHash, nil
}

type fakeCluster struct {
	rec      *recorder
	joinOpts kubetool.JoinOptions
}

func (f *fakeCluster) Join(opts kubetool.JoinOptions) error {
	f.rec.record("cluster.join")
	f.joinOpts = opts
	return nil
}

func (f *fakeCluster) Reset() error {
	f.rec.record("cluster.reset")
	return nil
}

func (f *fakeCluster) Nodes() (string, error) {
	f.rec.record("cluster.nodes")
	return "NAME STATUS\nworker-1 Ready\n", nil
}

func (f *fakeCluster) WaitNodeReady(nodeName string, timeout time.Duration) error {
	f.rec.record("cluster.wait-node-ready")
	return nil
}

func testConfig() *config.NodeConfiguration {
	return &config.NodeConfiguration{
		Name:              "worker-1",
		StateDir:          config.DefaultStateDir,
		KubernetesVersion: "v1.11.2",
		ContainerRuntime:  config.RuntimeDocker,
		DiscoveryURL:      "http://cluster.local",
		APIServerEndpoint: "10.0.0.1:6443",
	}
}

func newTestProvisioner(t *testing.T, rec *recorder, runtimeFail bool) (*Provisioner, *fakeCluster) {
	cluster := &fakeCluster{rec: rec}
	p, err := New(testConfig(), Deps{
		Packages:  &fakePackages{rec: rec},
		Services:  &fakeServices{rec: rec},
		Runtime:   &fakeRuntime{rec: rec, fail: runtimeFail},
		Swap:      &fakeSwap{rec: rec},
		Discovery: &fakeDiscovery{rec: rec},
		Cluster:   cluster,
		WriteNetConf: func() error {
			rec.record("cninet.write")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p, cluster
}

func TestInitOrder(t *testing.T) {
	rec := &recorder{}
	p, cluster := newTestProvisioner(t, rec, false)

	if err := p.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"packages.update",
		"runtime.install",
		"packages.install",
		"services.enable kubelet.service",
		"swap.disable",
		"cninet.write",
		"discovery.token",
		"discovery.ca-cert-hash",
		"cluster.join",
		"cluster.wait-node-ready",
		"cluster.nodes",
	}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("expected call order %v, got %v", expected, rec.calls)
	}

	// the fetched credentials must end up in the join invocation
	if cluster.joinOpts.Token != testToken {
		t.Errorf("expected join token %q, got %q", testToken, cluster.joinOpts.Token)
	}
	if cluster.joinOpts.CACertHash != testCACertHash {
		t.Errorf("expected join CA cert hash %q, got %q", testCACertHash, cluster.joinOpts.CACertHash)
	}
	if cluster.joinOpts.NodeName != "worker-1" {
		t.Errorf("expected join node name %q, got %q", "worker-1", cluster.joinOpts.NodeName)
	}
}

func TestInitAbortsOnFailure(t *testing.T) {
	rec := &recorder{}
	p, _ := newTestProvisioner(t, rec, true)

	if err := p.Init(); err == nil {
		t.Fatal("expected error from failing runtime install")
	}

	expected := []string{
		"packages.update",
		"runtime.install",
	}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("expected sequence to abort after %v, got %v", expected, rec.calls)
	}
}

func TestInitInvalidConfig(t *testing.T) {
	rec := &recorder{}
	p, _ := newTestProvisioner(t, rec, false)
	p.cfg.APIServerEndpoint = ""

	if err := p.Init(); err == nil {
		t.Fatal("expected error for invalid configuration")
	}
	if len(rec.calls) != 0 {
		t.Errorf("no step must run with invalid configuration, got %v", rec.calls)
	}
}

func TestResetOrder(t *testing.T) {
	rec := &recorder{}
	p, _ := newTestProvisioner(t, rec, false)

	if err := p.Reset(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"cluster.reset",
		"services.stop kubelet.service",
		"services.disable kubelet.service",
		"packages.remove",
		"runtime.remove",
		"swap.enable",
	}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("expected call order %v, got %v", expected, rec.calls)
	}
}

func TestNewMissingCapability(t *testing.T) {
	if _, err := New(testConfig(), Deps{}); err == nil {
		t.Fatal("expected error for missing capabilities")
	}
}
