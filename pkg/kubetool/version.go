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

package kubetool

import (
	"github.com/Masterminds/semver"
)

// MinKubernetesVersion is the oldest release kubeadm join is known to
// work with here.
const MinKubernetesVersion = "1.9.0"

// IsSupportedVersion returns true if the given Kubernetes version
// satisfies the minimum supported release.
func IsSupportedVersion(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}

	c, err := semver.NewConstraint(">=" + MinKubernetesVersion)
	if err != nil {
		return false
	}

	return c.Check(v)
}
