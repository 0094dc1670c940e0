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
	"github.com/eesrc/iridium/pkg/output/outputconfig"
)

// MQTTParameters configures the MQTT output. The output is disabled when
// the endpoint is empty.
type MQTTParameters struct {
	Endpoint         string `param:"desc=MQTT broker endpoint (tcp://host:port or ssl://host:port);default="`
	ClientID         string `param:"desc=MQTT client ID;default=iridiumd"`
	Topic            string `param:"desc=Topic prefix. Messages are published to <topic>/<imei>;default=iridium"`
	Username         string `param:"desc=MQTT user name;default="`
	Password         string `param:"desc=MQTT password;default="`
	QoS              int    `param:"desc=MQTT quality of service level;default=1;min=0;max=2"`
	DisableCertCheck bool   `param:"desc=Skip certificate checks for ssl:// endpoints;default=false"`
}

// WebhookParameters configures the webhook output. The output is disabled
// when the URL is empty.
type WebhookParameters struct {
	URL               string `param:"desc=URL messages are POSTed to;default="`
	BasicAuthUser     string `param:"desc=Basic auth user name;default="`
	BasicAuthPass     string `param:"desc=Basic auth password;default="`
	CustomHeaderName  string `param:"desc=Custom header name;default="`
	CustomHeaderValue string `param:"desc=Custom header value;default="`
}

// UDPParameters configures the UDP output. The output is disabled when the
// host is empty.
type UDPParameters struct {
	Host string `param:"desc=Host payloads are sent to;default="`
	Port int    `param:"desc=Port payloads are sent to;default=0;min=0;max=65535"`
}

// Parameters holds the configuration for all of the outputs
type Parameters struct {
	MQTT       MQTTParameters
	Webhook    WebhookParameters
	UDP        UDPParameters
	AllowLocal bool `param:"desc=Allow outputs to local and private addresses;default=false"`
}

// Definitions returns the outputs that are configured
func (p Parameters) Definitions() []Definition {
	var ret []Definition
	if p.MQTT.Endpoint != "" {
		ret = append(ret, Definition{ID: "mqtt", Type: "mqtt", Config: Config{
			outputconfig.MQTTEndpoint:         p.MQTT.Endpoint,
			outputconfig.MQTTClientID:         p.MQTT.ClientID,
			outputconfig.MQTTTopicName:        p.MQTT.Topic,
			outputconfig.MQTTUsername:         p.MQTT.Username,
			outputconfig.MQTTPassword:         p.MQTT.Password,
			outputconfig.MQTTQoS:              float64(p.MQTT.QoS),
			outputconfig.MQTTDisableCertCheck: p.MQTT.DisableCertCheck,
		}})
	}
	if p.Webhook.URL != "" {
		ret = append(ret, Definition{ID: "webhook", Type: "webhook", Config: Config{
			outputconfig.WebhookURLField:          p.Webhook.URL,
			outputconfig.WebhookBasicAuthUser:     p.Webhook.BasicAuthUser,
			outputconfig.WebhookBasicAuthPass:     p.Webhook.BasicAuthPass,
			outputconfig.WebhookCustomHeaderName:  p.Webhook.CustomHeaderName,
			outputconfig.WebhookCustomHeaderValue: p.Webhook.CustomHeaderValue,
		}})
	}
	if p.UDP.Host != "" {
		ret = append(ret, Definition{ID: "udp", Type: "udp", Config: Config{
			outputconfig.UDPHost: p.UDP.Host,
			outputconfig.UDPPort: float64(p.UDP.Port),
		}})
	}
	return ret
}
