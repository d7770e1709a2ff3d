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
	"os"

	"github.com/spf13/viper"
)

const (
	DefaultStateDir          = "/var/lib/nodeadm"
	DefaultContainerRuntime  = RuntimeDocker
	DefaultKubernetesVersion = "v1.11.2"
	DefaultDiscoveryURL      = "http://cluster.local"
)

func SetDefaults_Viper(v *viper.Viper) {
	hostname, _ := os.Hostname()

	v.SetDefault("dir", DefaultStateDir)
	v.SetDefault("node-name", hostname)
	v.SetDefault("container-runtime", DefaultContainerRuntime)
	v.SetDefault("kubernetes-version", DefaultKubernetesVersion)
	v.SetDefault("discovery-url", DefaultDiscoveryURL)
	v.SetDefault("api-server-endpoint", "")
}
