package output

//
//Copyright 2019 Telenor Digital AS
//
//Licensed under the Apache License, Version 2.0 (the "License");
//you may not use this file except in compliance with the License.
//You may obtain a copy of the License at
//
//http://www.apache.org/licenses/LICENSE-2.0
//
//Unless required by applicable law or agreed to in writing, software
//distributed under the License is distributed on an "AS IS" BASIS,
//WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//See the License for the specific language governing permissions and
//limitations under the License.
//
import (
	"net"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/ExploratoryEngineering/logging"
)

// endpointChecker checks the endpoints the outputs forward to. Reserved
// domains (example.com, .test, .invalid, .localhost...) are rejected and so
// are hosts resolving to private, loopback or link-local addresses unless
// local endpoints are allowed.
type endpointChecker struct {
	endpoint string
	u        *url.URL
}

func newEndpointChecker(endpoint string) endpointChecker {
	u, err := url.Parse(endpoint)
	if err != nil {
		logging.Debug("Invalid URL (%s): %v", endpoint, err)
		u = nil
	}
	return endpointChecker{endpoint: endpoint, u: u}
}

// IsValidMQTTEndpoint checks the endpoint format, ie tcp:// or ssl:// with
// a port and no path. The host is checked by IsValidHost.
func (e *endpointChecker) IsValidMQTTEndpoint() bool {
	if e.u == nil || e.u.Host == "" {
		return false
	}
	if e.u.Scheme != "tcp" && e.u.Scheme != "ssl" {
		return false
	}
	return e.u.Port() != "" && e.u.Path == ""
}

// IsValidHTTPURL returns true if the endpoint is a properly formatted HTTP
// or HTTPS URL.
func (e *endpointChecker) IsValidHTTPURL() bool {
	if e.u == nil || e.u.Host == "" {
		return false
	}
	return e.u.Scheme == "http" || e.u.Scheme == "https"
}

// IsSSLScheme checks if the endpoint uses TLS for MQTT
func (e *endpointChecker) IsSSLScheme() bool {
	return e.u != nil && e.u.Scheme == "ssl"
}

// Host returns the host name without the port
func (e *endpointChecker) Host() string {
	if e.u == nil {
		return ""
	}
	return e.u.Hostname()
}

var reservedNetworks = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"::1/128",
	"100::/64",
	"2001::/23",
	"2001:2::/48",
	"fc00::/7",
	"fe80::/10",
}

var reservedDomains = []string{
	"example.com",
	"example.org",
	"example.net",
	".test",
	".example",
	".invalid",
	".localhost",
}

var reservedCIDRs []*net.IPNet

var allowLocal int32

func init() {
	for _, s := range reservedNetworks {
		_, n, err := net.ParseCIDR(s)
		if err != nil {
			logging.Warning("Unable to parse CIDR %s: %v", s, err)
			continue
		}
		reservedCIDRs = append(reservedCIDRs, n)
	}
}

// AllowLocalEndpoints turns the checks for private and loopback addresses
// on or off. Turn it on for local testing only.
func AllowLocalEndpoints(allow bool) {
	if allow {
		logging.Warning("Outputs may forward to local and private addresses")
		atomic.StoreInt32(&allowLocal, 1)
		return
	}
	atomic.StoreInt32(&allowLocal, 0)
}

// IsValidHost checks if the host part of the endpoint resolves to a public
// address.
func (e *endpointChecker) IsValidHost() bool {
	host := e.Host()
	if host == "" {
		return false
	}
	for _, domain := range reservedDomains {
		if strings.HasSuffix(host, domain) {
			return false
		}
	}
	addrs, err := net.LookupHost(host)
	if err != nil {
		return false
	}
	if atomic.LoadInt32(&allowLocal) == 1 {
		return true
	}
	for _, addr := range addrs {
		ip := net.ParseIP(addr)
		if ip == nil {
			return false
		}
		for _, n := range reservedCIDRs {
			if n.Contains(ip) {
				logging.Info("Endpoint %s resolves to reserved network %s", e.endpoint, n.String())
				return false
			}
		}
	}
	return true
}
