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
	"path"

	"github.com/spf13/cobra"

	"github.com/clusterlite/nodeadm/pkg/script"
	"github.com/clusterlite/nodeadm/pkg/utils/fs"
)

var (
	flagFileserverOutputDir  string
	flagFileserverContentDir string
	flagFileserverPort       int

	fileserverCmd = &cobra.Command{
		Use:   "fileserver",
		Short: "Generate the config for a static file server hosting node artifacts",
		Example: `
# Write nginx.conf and docker-compose.yaml to /etc/nodeadm/fileserver
$ nodeadm fileserver --content-dir /srv/www --port 8080`,
		Run: runFileserver,
	}
)

func init() {
	fileserverCmd.Flags().StringVar(&flagFileserverOutputDir, "output-dir", "/etc/nodeadm/fileserver", "Directory to write the generated config to")
	fileserverCmd.Flags().StringVar(&flagFileserverContentDir, "content-dir", "/srv/www", "Host directory the file server should serve")
	fileserverCmd.Flags().IntVar(&flagFileserverPort, "port", 8080, "Port the file server should listen on")
	nodeadmCmd.AddCommand(fileserverCmd)
}

func runFileserver(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("Command fileserver doesn't take arguments, got: %v", args)
	}

	settings := script.FileserverSettings{
		Port:       flagFileserverPort,
		ContentDir: flagFileserverContentDir,
		ConfigPath: path.Join(flagFileserverOutputDir, "nginx.conf"),
	}

	nginxConf, err := script.ExecuteTemplate(script.FileserverNginxConfigTmpl, settings)
	if err != nil {
		log.Fatalf("Failed to render nginx config: %v", err)
	}
	composeFile, err := script.ExecuteTemplate(script.FileserverComposeTmpl, settings)
	if err != nil {
		log.Fatalf("Failed to render compose file: %v", err)
	}

	if err := fs.CreateFileFromBytes(settings.ConfigPath, nginxConf.Bytes()); err != nil {
		log.Fatalf("Failed to write nginx config: %v", err)
	}
	composePath := path.Join(flagFileserverOutputDir, "docker-compose.yaml")
	if err := fs.CreateFileFromBytes(composePath, composeFile.Bytes()); err != nil {
		log.Fatalf("Failed to write compose file: %v", err)
	}

	log.Printf("Wrote file server config to %q", flagFileserverOutputDir)
}
