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
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ExploratoryEngineering/logging"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/output/outputconfig"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/utils/audit"
)

type mqttConfig struct {
	endpoint         string
	disableCertCheck bool
	username         string
	password         string
	clientID         string
	topicName        string
	qos              byte
}

func init() {
	registerOutput("mqtt", newMQTT)
}

func newMQTTConfig(config Config) mqttConfig {
	ret := mqttConfig{
		endpoint:         configString(config, outputconfig.MQTTEndpoint),
		disableCertCheck: configBool(config, outputconfig.MQTTDisableCertCheck),
		username:         configString(config, outputconfig.MQTTUsername),
		password:         configString(config, outputconfig.MQTTPassword),
		clientID:         configString(config, outputconfig.MQTTClientID),
		topicName:        configString(config, outputconfig.MQTTTopicName),
		qos:              byte(configInt(config, outputconfig.MQTTQoS, 1)),
	}
	return ret
}

// topic returns the topic for messages from a modem
func (c mqttConfig) topic(imei string) string {
	return fmt.Sprintf("%s/%s", c.topicName, imei)
}

type mqttOutput struct {
	client mqtt.Client
	logs   Logger
	status Status
	mutex  sync.Mutex
	done   chan struct{}
}

func newMQTT() Output {
	return &mqttOutput{logs: NewLogger()}
}

func (m *mqttOutput) Validate(config Config) (ErrorMessage, error) {
	errs := validateConfig(config, []fieldSpec{
		stringField(outputconfig.MQTTEndpoint, true),
		stringField(outputconfig.MQTTClientID, true),
		stringField(outputconfig.MQTTTopicName, true),
		boolField(outputconfig.MQTTDisableCertCheck),
		stringField(outputconfig.MQTTPassword, false),
		stringField(outputconfig.MQTTUsername, false),
		numberField(outputconfig.MQTTQoS, false, 0, 2),
	})
	if ep, ok := config[outputconfig.MQTTEndpoint].(string); ok {
		check := newEndpointChecker(ep)
		if !check.IsValidMQTTEndpoint() {
			errs[outputconfig.MQTTEndpoint] = "Invalid endpoint URL. Must include protocol, port and no path."
		} else if !check.IsValidHost() {
			errs[outputconfig.MQTTEndpoint] = "Unknown or invalid host name"
		}
	}
	if len(errs) > 0 {
		return errs, ErrInvalidConfig
	}
	return errs, nil
}

func (m *mqttOutput) Start(config Config, messages <-chan interface{}) {
	if errs, err := m.Validate(config); err != nil {
		m.logs.Append("Invalid config. Output isn't started.")
		logging.Warning("Invalid config for MQTT output: %+v. Won't start", errs)
		return
	}
	mqttConf := newMQTTConfig(config)
	checker := newEndpointChecker(mqttConf.endpoint)
	opts := mqtt.NewClientOptions()
	logging.Debug("Starting MQTT output to %s (topic %s)", mqttConf.endpoint, mqttConf.topicName)
	opts.AddBroker(mqttConf.endpoint)
	opts.SetClientID(mqttConf.clientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)
	opts.SetWriteTimeout(1 * time.Second)
	// An auto reconnecting client blocks the sender until the broker is
	// back. The sender reconnects on the next message instead.
	opts.SetAutoReconnect(false)
	opts.SetMessageChannelDepth(1)
	opts.SetCleanSession(true)
	if mqttConf.username != "" {
		opts.SetUsername(mqttConf.username)
	}
	if mqttConf.password != "" {
		opts.SetPassword(mqttConf.password)
	}
	if checker.IsSSLScheme() {
		opts.SetTLSConfig(&tls.Config{
			InsecureSkipVerify: mqttConf.disableCertCheck,
		})
	}

	m.mutex.Lock()
	m.client = mqtt.NewClient(opts)
	m.done = make(chan struct{})
	m.mutex.Unlock()

	go m.sender(messages, mqttConf)
}

func (m *mqttOutput) connect() error {
	token := m.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		m.logs.Append(fmt.Sprintf("Unable to connect to broker: %v", err.Error()))
		return err
	}
	m.logs.Append("Connected to broker")
	return nil
}

func (m *mqttOutput) countError() {
	m.mutex.Lock()
	m.status.ErrorCount++
	m.mutex.Unlock()
	metrics.DefaultOutputCounters.Failed("mqtt")
}

func (m *mqttOutput) sender(messages <-chan interface{}, config mqttConfig) {
	defer close(m.done)
	for msg := range messages {
		m.mutex.Lock()
		m.status.Received++
		m.mutex.Unlock()

		sbdMsg, ok := msg.(sbd.Message)
		if !ok {
			logging.Warning("Didn't receive a sbd.Message on channel but got %T. Silently dropping it.", msg)
			m.countError()
			continue
		}
		buf, err := json.Marshal(NewMessage(sbdMsg))
		if err != nil {
			logging.Warning("Unable to marshal message from %s into JSON: %v. Silently dropping it.", sbdMsg.IMEI, err)
			m.countError()
			continue
		}
		if !m.client.IsConnected() {
			if err := m.connect(); err != nil {
				logging.Info("Unable to connect to MQTT broker %s: %v", config.endpoint, err)
				m.countError()
				continue
			}
		}
		token := m.client.Publish(config.topic(sbdMsg.IMEI), config.qos, false, buf)
		token.Wait()
		if err := token.Error(); err != nil {
			logging.Info("Unable to send message to MQTT server %s: %v", config.endpoint, err)
			m.logs.Append(fmt.Sprintf("Error sending message: %s", err.Error()))
			m.countError()
			continue
		}
		m.mutex.Lock()
		m.status.Forwarded++
		m.mutex.Unlock()
		metrics.DefaultOutputCounters.Forwarded("mqtt")
		audit.Log("MQTT: Forwarded %d bytes from IMEI %s (MOMSN %d) to %s",
			len(sbdMsg.Payload), sbdMsg.IMEI, sbdMsg.MOMSN, config.topic(sbdMsg.IMEI))
	}
	logging.Debug("Output channel closed for MQTT output to %s/%s", config.endpoint, config.topicName)
}

func (m *mqttOutput) Stop(timeout time.Duration) {
	m.mutex.Lock()
	client, done := m.client, m.done
	m.mutex.Unlock()
	if client == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(timeout):
		logging.Warning("MQTT output didn't drain its queue in %v", timeout)
	}
	if client.IsConnected() {
		client.Disconnect(250)
		m.logs.Append("Disconnected from broker")
	}
}

func (m *mqttOutput) Logs() []LogEntry {
	return m.logs.Entries()
}

func (m *mqttOutput) Status() Status {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	ret := m.status
	return ret
}
