// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads workflow settings from a .env style file, with
// process environment variables taking precedence.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/fanjia1024/ticketflow/llm"
)

// Config carries model credentials and the desk service addresses.
type Config struct {
	APIType string `mapstructure:"API_TYPE"`

	AzureOpenAIEndpoint   string `mapstructure:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIDeployment string `mapstructure:"AZURE_OPENAI_DEPLOYMENT"`
	AzureOpenAIKey        string `mapstructure:"AZURE_OPENAI_KEY"`
	AzureOpenAIAPIVersion string `mapstructure:"AZURE_OPENAI_API_VERSION"`

	// non-Azure overrides
	BaseURL   string `mapstructure:"BASE_URL"`
	APIKey    string `mapstructure:"API_KEY"`
	ModelName string `mapstructure:"MODEL_NAME"`

	RESTAddr string `mapstructure:"REST_ADDR"`
	SSEAddr  string `mapstructure:"SSE_ADDR"`
	SeedFile string `mapstructure:"SEED_FILE"`
}

// Load reads path (default ".env" when it exists) and the environment.
// Environment variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("API_TYPE", string(llm.ModelTypeAzure))
	v.SetDefault("AZURE_OPENAI_API_VERSION", "2024-10-21")
	v.SetDefault("REST_ADDR", ":5060")
	v.SetDefault("SSE_ADDR", ":5070")

	// viper only consults the environment for keys it has seen, so bind
	// every field explicitly.
	for _, key := range []string{
		"API_TYPE",
		"AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_DEPLOYMENT",
		"AZURE_OPENAI_KEY", "AZURE_OPENAI_API_VERSION",
		"BASE_URL", "API_KEY", "MODEL_NAME",
		"REST_ADDR", "SSE_ADDR", "SEED_FILE",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "read config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &c, nil
}

// ModelConfig validates the credentials and converts them for the llm layer.
func (c *Config) ModelConfig() (llm.ModelConfig, error) {
	apiType := llm.NewModelType(c.APIType)
	switch apiType {
	case llm.ModelTypeAzure:
		for key, val := range map[string]string{
			"AZURE_OPENAI_ENDPOINT":   c.AzureOpenAIEndpoint,
			"AZURE_OPENAI_DEPLOYMENT": c.AzureOpenAIDeployment,
			"AZURE_OPENAI_KEY":        c.AzureOpenAIKey,
		} {
			if val == "" {
				return llm.ModelConfig{}, errors.Errorf("missing required setting %s", key)
			}
		}
		return llm.ModelConfig{
			Name:       "desk",
			APIType:    apiType,
			BaseURL:    c.AzureOpenAIEndpoint,
			APIKey:     c.AzureOpenAIKey,
			ModelName:  c.AzureOpenAIDeployment,
			APIVersion: c.AzureOpenAIAPIVersion,
		}, nil
	case llm.ModelTypeOpenAI, llm.ModelTypeOllama:
		if c.ModelName == "" {
			return llm.ModelConfig{}, errors.New("missing required setting MODEL_NAME")
		}
		return llm.ModelConfig{
			Name:      "desk",
			APIType:   apiType,
			BaseURL:   c.BaseURL,
			APIKey:    c.APIKey,
			ModelName: c.ModelName,
		}, nil
	default:
		return llm.ModelConfig{}, errors.Errorf("unknown API_TYPE %q", c.APIType)
	}
}
