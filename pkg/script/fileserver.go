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

package script

// FileserverSettings parameterizes the static file-server artifact:
// an nginx container serving a host directory read-only over HTTP.
type FileserverSettings struct {
	Port       int
	ContentDir string
	ConfigPath string
}

const FileserverNginxConfigTmpl = `server {
    listen {{.Port}};
    server_name _;

    root /srv/www;
    autoindex on;

    location / {
        try_files $uri $uri/ =404;
    }
}
`

const FileserverComposeTmpl = `version: "2"

services:
  fileserver:
    image: nginx:1.15-alpine
    restart: always
    ports:
      - "{{.Port}}:{{.Port}}"
    volumes:
      - {{.ConfigPath}}:/etc/nginx/conf.d/default.conf:ro
      - {{.ContentDir}}:/srv/www:ro
`
