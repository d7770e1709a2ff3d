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

// Package discovery fetches the kubeadm bootstrap credentials from the
// cluster discovery endpoint. The endpoint serves two plain-text
// resources, /token and /token-ca-cert-hash.
package discovery

import (
	"io"
	"io/ioutil"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultTimeout = 15 * time.Second
	fetchRetries   = 3
	retryDelay     = 1 * time.Second

	// responses are single-line credentials, anything bigger is bogus
	maxBodySize = 4096
)

var (
	// kubeadm bootstrap token, see bootstrap.kubernetes.io/token
	tokenRegexp = regexp.MustCompile(`^[a-z0-9]{6}\.[a-z0-9]{16}$`)
	// sha256 hash of the cluster CA certificate public key
	caCertHashRegexp = regexp.MustCompile(`^sha256:[a-f0-9]{64}$`)
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		retries:    fetchRetries,
	}
}

// Token returns the bootstrap token for kubeadm join.
func (c *Client) Token() (string, error) {
	return c.fetch("/token", tokenRegexp, "bootstrap token")
}

// CACertHash returns the CA certificate hash used to authenticate the
// control plane during join.
func (c *Client) CACertHash() (string, error) {
	return c.fetch("/token-ca-cert-hash", caCertHashRegexp, "CA cert hash")
}

func (c *Client) fetch(path string, valid *regexp.Regexp, what string) (string, error) {
	url := c.baseURL + path

	var body string
	var err error
	for i := 0; i < c.retries; i++ {
		if i > 0 {
			time.Sleep(retryDelay)
		}
		body, err = c.get(url)
		if err == nil {
			break
		}
	}
	if err != nil {
		return "", errors.Wrapf(err, "error fetching %s from %q", what, url)
	}

	value := strings.TrimSpace(body)
	if !valid.MatchString(value) {
		return "", errors.Errorf("discovery endpoint %q returned malformed %s %q", url, what, value)
	}
	return value, nil
}

func (c *Client) get(url string) (string, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %q", resp.Status)
	}
	body, err := ioutil.ReadAll(&io.LimitedReader{R: resp.Body, N: maxBodySize})
	if err != nil {
		return "", err
	}
	return string(body), nil
}
