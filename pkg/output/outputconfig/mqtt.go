package outputconfig

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

const (
	// MQTTEndpoint is the broker URL, ie tcp://host:1883 or ssl://host:8883
	MQTTEndpoint = "endpoint"
	// MQTTDisableCertCheck turns off certificate checks for ssl:// brokers
	MQTTDisableCertCheck = "disableCertCheck"
	// MQTTUsername is the user name for the broker
	MQTTUsername = "username"
	// MQTTPassword is the password for the broker
	MQTTPassword = "password"
	// MQTTClientID is the client ID used when connecting
	MQTTClientID = "clientId"
	// MQTTTopicName is the topic prefix. Messages are published to
	// <topicName>/<imei>
	MQTTTopicName = "topicName"
	// MQTTQoS is the quality of service level for published messages
	MQTTQoS = "qos"
)
