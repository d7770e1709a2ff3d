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

package cninet

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"testing"
)

func TestWriteNetConfTo(t *testing.T) {
	dir, err := ioutil.TempDir("", "cninet-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err := WriteNetConfTo(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := ioutil.ReadFile(path.Join(dir, bridgeConfFilename))
	if err != nil {
		t.Fatalf("bridge config not written: %v", err)
	}

	var conf map[string]interface{}
	if err := json.Unmarshal(raw, &conf); err != nil {
		t.Fatalf("bridge config is not valid JSON: %v", err)
	}
	if conf["type"] != "bridge" {
		t.Errorf("expected type bridge, got %v", conf["type"])
	}
	if conf["bridge"] != bridgeName {
		t.Errorf("expected bridge %q, got %v", bridgeName, conf["bridge"])
	}
	ipam, ok := conf["ipam"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected ipam section, got %v", conf["ipam"])
	}
	if ipam["subnet"] != defaultSubnet {
		t.Errorf("expected subnet %q, got %v", defaultSubnet, ipam["subnet"])
	}

	raw, err = ioutil.ReadFile(path.Join(dir, loopbackConfFilename))
	if err != nil {
		t.Fatalf("loopback config not written: %v", err)
	}
	if err := json.Unmarshal(raw, &conf); err != nil {
		t.Fatalf("loopback config is not valid JSON: %v", err)
	}
	if conf["type"] != "loopback" {
		t.Errorf("expected type loopback, got %v", conf["type"])
	}
}
