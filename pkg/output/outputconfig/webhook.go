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
	// WebhookURLField is the URL messages are POSTed to
	WebhookURLField = "url"
	// WebhookBasicAuthUser is the user name for basic auth
	WebhookBasicAuthUser = "basicAuthUser"
	// WebhookBasicAuthPass is the password for basic auth
	WebhookBasicAuthPass = "basicAuthPass"
	// WebhookCustomHeaderName is the name of an extra header
	WebhookCustomHeaderName = "customHeaderName"
	// WebhookCustomHeaderValue is the value of the extra header
	WebhookCustomHeaderValue = "customHeaderValue"
)
