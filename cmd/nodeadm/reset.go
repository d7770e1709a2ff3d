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
	"path"

	"github.com/spf13/cobra"

	"github.com/clusterlite/nodeadm/pkg/config"
)

var (
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Remove this node from the cluster and revert the provisioning",
		Run:   runReset,
	}
)

func init() {
	nodeadmCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("Command reset doesn't take arguments, got: %v", args)
	}
	doReset()
}

func doReset() {
	requireRoot()

	cfg := loadNodeConfig()
	p := newProvisioner(cfg)

	if err := p.Reset(); err != nil {
		log.Fatalf("Failed to reset node: %v", err)
	}

	cfgFile := path.Join(cfg.StateDir, config.Filename)
	if err := os.Remove(cfgFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to remove %q: %v", cfgFile, err)
	}
}
