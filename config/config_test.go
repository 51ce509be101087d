// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	c := &Config{StorageDSN: "postgres://localhost:5432/edgaringest"}
	c.SECAPI.UserAgent = "Research Tool admin@example.com"
	c.SECAPI.RateLimit = 8.0
	return c
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsUserAgentWithoutContact(t *testing.T) {
	c := validConfig()
	c.SECAPI.UserAgent = "Research Tool Example Corp"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsShortUserAgent(t *testing.T) {
	c := validConfig()
	c.SECAPI.UserAgent = "a@b"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsOutOfRangeRateLimit(t *testing.T) {
	c := validConfig()
	c.SECAPI.RateLimit = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.SECAPI.RateLimit = 10.5
	assert.Error(t, c.Validate())

	c = validConfig()
	c.SECAPI.RateLimit = 10
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsMissingDSN(t *testing.T) {
	c := validConfig()
	c.StorageDSN = ""
	assert.Error(t, c.Validate())
}
