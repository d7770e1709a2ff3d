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
	"path"

	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/clusterlite/nodeadm/pkg/utils/fs"
)

const Filename = "nodeadm.toml"

// LoadConfig reads the node configuration written by a previous init
// from the state dir, overlaid on the current viper settings.
func LoadConfig() (*NodeConfiguration, error) {
	cfgFile := path.Join(viper.GetString("dir"), Filename)
	viper.SetConfigFile(cfgFile)

	var cfg = &NodeConfiguration{}
	err := viper.ReadInConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode viper config")
	}
	return cfg, err
}

func IsNotFound(err error) bool {
	switch err.(type) {
	case viper.ConfigFileNotFoundError:
		return true
	default:
		return os.IsNotExist(err)
	}
}

func WriteConfigToFile(cfg *NodeConfiguration) error {
	cfgFilepath := path.Join(cfg.StateDir, Filename)
	raw, err := toml.Marshal(*cfg)
	if err != nil {
		return errors.Wrap(err, "unable to encode node config")
	}
	return fs.CreateFileFromBytes(cfgFilepath, raw)
}
