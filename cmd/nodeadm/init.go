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

	"github.com/spf13/cobra"

	"github.com/clusterlite/nodeadm/pkg/config"
)

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Provision this host and join it to the cluster",
		Example: `
# Join the cluster behind 10.0.0.1 using the default discovery endpoint
$ sudo nodeadm init --api-server-endpoint 10.0.0.1:6443`,
		Run: runInit,
	}
)

func init() {
	nodeadmCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("Command init doesn't take arguments, got: %v", args)
	}
	doInit()
}

func doInit() {
	requireRoot()

	cfg := newNodeConfig()
	p := newProvisioner(cfg)

	if err := p.Init(); err != nil {
		log.Fatalf("Failed to initialize node: %v", err)
	}

	if err := config.WriteConfigToFile(cfg); err != nil {
		log.Printf("Warning: failed to record node config: %v", err)
	}
}
