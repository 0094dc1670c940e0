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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/output/outputconfig"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/utils/audit"
)

// webhook POSTs messages to an URL. Each POST contains one or more messages.
// The webhook backs off if the server returns anything but a 2xx status
// code, first 1 second then 2, 4 and so on until it reaches maxBackOff.
// The webhook may use either a custom header with a secret or basic auth.
type webhook struct {
	terminate    chan bool
	done         chan struct{}
	status       Status
	logs         Logger
	config       Config
	mutex        *sync.Mutex
	nextSendTime time.Time
	backOffTime  time.Duration
	client       *http.Client
}

// webhookBody is the body of the webhook POST requests
type webhookBody struct {
	Messages []Message `json:"messages"`
}

const (
	defaultHTTPClientTimeout = 10 * time.Second
	maxBackOff               = 256 * time.Second
)

func (w *webhook) hasBasicAuth() bool {
	return configString(w.config, outputconfig.WebhookBasicAuthUser) != "" &&
		configString(w.config, outputconfig.WebhookBasicAuthPass) != ""
}

func (w *webhook) hasCustomHeader() bool {
	return configString(w.config, outputconfig.WebhookCustomHeaderName) != "" &&
		configString(w.config, outputconfig.WebhookCustomHeaderValue) != ""
}

func newWebhook() Output {
	return &webhook{
		terminate:   make(chan bool, 1),
		mutex:       &sync.Mutex{},
		logs:        NewLogger(),
		backOffTime: time.Second,
		client:      &http.Client{Timeout: defaultHTTPClientTimeout},
	}
}

func init() {
	registerOutput("webhook", newWebhook)
}

func (w *webhook) backOff() {
	w.nextSendTime = time.Now().Add(w.backOffTime)
	if w.backOffTime < maxBackOff {
		w.backOffTime *= 2
	}
	w.mutex.Lock()
	w.status.ErrorCount++
	w.mutex.Unlock()
}

// sendMessages sends aggregated messages to the configured endpoint.
func (w *webhook) sendMessages(body webhookBody) bool {
	if time.Now().Before(w.nextSendTime) {
		return false
	}
	buf, err := json.Marshal(body)
	if err != nil {
		logging.Warning("Unable to marshal webhook body: %v", err)
		return false
	}
	url := configString(w.config, outputconfig.WebhookURLField)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		logging.Warning("Unable to create request for webhook POST: %v", err)
		return false
	}
	if w.hasBasicAuth() {
		req.SetBasicAuth(configString(w.config, outputconfig.WebhookBasicAuthUser), configString(w.config, outputconfig.WebhookBasicAuthPass))
	}
	req.Header.Add("Content-Type", "application/json")
	if w.hasCustomHeader() {
		req.Header.Add(configString(w.config, outputconfig.WebhookCustomHeaderName), configString(w.config, outputconfig.WebhookCustomHeaderValue))
	}

	res, err := w.client.Do(req)
	if err != nil {
		w.backOff()
		logging.Warning("Error calling remote URL: %v. Backoff is %d seconds", err, w.backOffTime/time.Second)
		w.logs.Append(fmt.Sprintf("Error calling %s", url))
		return false
	}
	// Drain the body so the client can reuse the connection
	io.Copy(ioutil.Discard, res.Body)
	res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		w.backOff()
		w.logs.Append(fmt.Sprintf("Got %d response code from %s. Will retry in %d seconds",
			res.StatusCode, url, w.backOffTime/time.Second))
		logging.Debug("Got %d response code from %s", res.StatusCode, url)
		return false
	}
	for _, msg := range body.Messages {
		audit.Log("Webhook: Forwarded %d bytes from IMEI %s (MOMSN %d)", len(msg.Payload), msg.IMEI, msg.MOMSN)
		metrics.DefaultOutputCounters.Forwarded("webhook")
	}

	w.backOffTime = time.Second
	w.mutex.Lock()
	w.status.Forwarded += len(body.Messages)
	w.mutex.Unlock()
	return true
}

func (w *webhook) webhookSender(receiver <-chan interface{}) {
	defer close(w.done)
	for {
		select {
		case <-w.terminate:
			logging.Debug("terminate signal, webhook terminates")
			return
		case msg, ok := <-receiver:
			if !ok {
				return
			}
			body := webhookBody{Messages: make([]Message, 0)}
			// Batch whatever is queued up
			for {
				if m, ok := msg.(sbd.Message); ok {
					body.Messages = append(body.Messages, NewMessage(m))
				} else {
					logging.Warning("Not a message: %T", msg)
				}
				if len(receiver) == 0 {
					break
				}
				if msg, ok = <-receiver; !ok {
					break
				}
			}
			w.mutex.Lock()
			w.status.Received += len(body.Messages)
			w.mutex.Unlock()

			if !w.sendMessages(body) {
				logging.Warning("Lost %d messages", len(body.Messages))
				for range body.Messages {
					metrics.DefaultOutputCounters.Failed("webhook")
				}
			}
		}
	}
}

func (w *webhook) Validate(config Config) (ErrorMessage, error) {
	errs := validateConfig(config, []fieldSpec{
		stringField(outputconfig.WebhookURLField, true),
		stringField(outputconfig.WebhookBasicAuthUser, false),
		stringField(outputconfig.WebhookBasicAuthPass, false),
		stringField(outputconfig.WebhookCustomHeaderName, false),
		stringField(outputconfig.WebhookCustomHeaderValue, false),
	})
	if url, ok := config[outputconfig.WebhookURLField].(string); ok {
		check := newEndpointChecker(url)
		if !check.IsValidHTTPURL() {
			errs[outputconfig.WebhookURLField] = "Invalid HTTP URL"
		} else if !check.IsValidHost() {
			errs[outputconfig.WebhookURLField] = "Invalid host name"
		}
	}
	if len(errs) > 0 {
		return errs, ErrInvalidConfig
	}
	return errs, nil
}

func (w *webhook) Start(config Config, messages <-chan interface{}) {
	if errs, err := w.Validate(config); err != nil {
		w.logs.Append("Invalid configuration. Stopped.")
		logging.Warning("Invalid config for webhook output: %+v. Won't start", errs)
		return
	}
	w.mutex.Lock()
	w.config = config
	w.done = make(chan struct{})
	w.mutex.Unlock()
	go w.webhookSender(messages)
}

func (w *webhook) Stop(timeout time.Duration) {
	w.mutex.Lock()
	done := w.done
	w.mutex.Unlock()
	if done == nil {
		return
	}
	select {
	case w.terminate <- true:
	default:
	}
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

func (w *webhook) Logs() []LogEntry {
	return w.logs.Entries()
}

func (w *webhook) Status() Status {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	ret := w.status
	return ret
}
