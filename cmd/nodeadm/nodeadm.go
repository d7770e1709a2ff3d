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
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clusterlite/nodeadm/pkg/config"
)

var (
	version string

	printVersion bool
	flagMode     string

	nodeadmCmd = &cobra.Command{
		Use:   "nodeadm",
		Short: "nodeadm manages the lifecycle of a Kubernetes node",
		Long: `nodeadm manages the lifecycle of a Kubernetes node: it installs the
container runtime and the Kubernetes node packages, disables swap and
joins the node to a cluster, or reverts all of that again.`,
		Run: runNodeadm,
	}
)

func init() {
	nodeadmCmd.Flags().BoolVarP(&printVersion, "version", "V", false, "output version information")
	nodeadmCmd.Flags().StringVarP(&flagMode, "mode", "m", "", "mode to run, one of init|reset")

	nodeadmCmd.PersistentFlags().String("dir", config.DefaultStateDir, "Path to the nodeadm state directory")
	nodeadmCmd.PersistentFlags().String("node-name", "", "Name to register the node with (defaults to the hostname)")
	nodeadmCmd.PersistentFlags().StringP("kubernetes-version", "k", config.DefaultKubernetesVersion, "Kubernetes version to install")
	nodeadmCmd.PersistentFlags().String("container-runtime", config.DefaultContainerRuntime, "Container runtime to install (only docker is supported)")
	nodeadmCmd.PersistentFlags().String("discovery-url", config.DefaultDiscoveryURL, "Endpoint serving the bootstrap token and CA cert hash")
	nodeadmCmd.PersistentFlags().String("api-server-endpoint", "", "host:port of the cluster API server to join")

	viper.BindPFlags(nodeadmCmd.PersistentFlags())
	config.SetDefaults_Viper(viper.GetViper())
}

// modeAction maps the legacy -m flag to the matching subcommand
// action.
func modeAction(mode string) (func(), bool) {
	switch mode {
	case "init":
		return doInit, true
	case "reset":
		return doReset, true
	}
	return nil, false
}

func runNodeadm(cmd *cobra.Command, args []string) {
	if printVersion {
		fmt.Printf("nodeadm %s\n", version)
		os.Exit(0)
	}

	action, ok := modeAction(flagMode)
	if !ok {
		if flagMode != "" {
			log.Printf("invalid mode %q, expected init or reset", flagMode)
		}
		cmd.Usage()
		os.Exit(1)
	}
	action()
}

func main() {
	if err := nodeadmCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
