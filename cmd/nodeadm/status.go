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

	"github.com/spf13/cobra"

	"github.com/clusterlite/nodeadm/pkg/exectool"
	"github.com/clusterlite/nodeadm/pkg/kubetool"
)

var (
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the nodes of the cluster this node belongs to",
		Run:   runStatus,
	}
)

func init() {
	nodeadmCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("Command status doesn't take arguments, got: %v", args)
	}

	kube := kubetool.New(exectool.New())
	nodes, err := kube.Nodes()
	if err != nil {
		log.Fatalf("Failed to list nodes: %v", err)
	}
	fmt.Print(nodes)
}
