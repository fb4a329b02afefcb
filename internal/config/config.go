/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the relgraphd configuration file.
package config

import (
	"io/ioutil"
	"strings"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/botobag/relgraph/internal/log"
)

// EndpointConfig configures the GraphQL endpoint of one entity family.
type EndpointConfig struct {
	// Path the endpoint is mounted at.
	Path string `yaml:"Path"`

	// UseIndex resolves list fields from the owner index instead of scanning tables.
	UseIndex bool `yaml:"UseIndex"`

	// Disabled removes the endpoint.
	Disabled bool `yaml:"Disabled"`
}

// Config is the relgraphd configuration.
type Config struct {
	// ListenAddr is the TCP address of the HTTP server.
	ListenAddr string `yaml:"ListenAddr"`

	// Library and Blog configure the endpoints of the two families.
	Library EndpointConfig `yaml:"Library"`
	Blog    EndpointConfig `yaml:"Blog"`

	// MaxBodySize caps the request body read by the GraphQL handlers.
	MaxBodySize uint `yaml:"MaxBodySize"`

	// OperationCacheSize is the capacity of the prepared operation cache of each endpoint.
	OperationCacheSize int `yaml:"OperationCacheSize"`

	// MutationQueueSize is the number of mutations that may wait for the mutation worker.
	MutationQueueSize int `yaml:"MutationQueueSize"`

	// MetricsPath exposes Prometheus metrics; empty disables it.
	MetricsPath string `yaml:"MetricsPath"`

	// CORSOrigins lists allowed origins; empty disables CORS handling.
	CORSOrigins []string `yaml:"CORSOrigins"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"ShutdownTimeout"`

	// LogLevel is one of logrus level names.
	LogLevel string `yaml:"LogLevel"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"LogFormat"`
}

// HealthPath is the liveness endpoint. It is not configurable.
const HealthPath = "/healthz"

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ListenAddr: "127.0.0.1:4000",
		Library: EndpointConfig{
			Path: "/graphql",
		},
		Blog: EndpointConfig{
			Path: "/blog/graphql",
		},
		MaxBodySize:        10 << 20,
		OperationCacheSize: 512,
		MutationQueueSize:  128,
		MetricsPath:        "/metrics",
		ShutdownTimeout:    10 * time.Second,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// LoadConfig reads the YAML file at configPath over the defaults.
func LoadConfig(configPath string) (config *Config, err error) {
	configBytes, err := ioutil.ReadFile(configPath)
	if err != nil {
		log.WithError(err).WithField("path", configPath).Error("read config file failed")
		return nil, errors.Wrap(err, "read config file")
	}
	return Parse(configBytes)
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration.
func (config *Config) Validate() error {
	if len(config.ListenAddr) == 0 {
		return errors.New("ListenAddr must not be empty")
	}

	paths := map[string]string{}
	addPath := func(name, path string) error {
		if !strings.HasPrefix(path, "/") {
			return errors.Errorf("%s %q must start with /", name, path)
		}
		if other, exists := paths[path]; exists {
			return errors.Errorf("%s and %s share path %q", other, name, path)
		}
		paths[path] = name
		return nil
	}

	for name, endpoint := range map[string]EndpointConfig{
		"Library.Path": config.Library,
		"Blog.Path":    config.Blog,
	} {
		if endpoint.Disabled {
			continue
		}
		if err := addPath(name, endpoint.Path); err != nil {
			return err
		}
	}
	if len(config.MetricsPath) > 0 {
		if err := addPath("MetricsPath", config.MetricsPath); err != nil {
			return err
		}
	}
	if err := addPath("health check", HealthPath); err != nil {
		return err
	}

	if config.MaxBodySize == 0 {
		return errors.New("MaxBodySize must be positive")
	}
	if config.OperationCacheSize <= 0 {
		return errors.New("OperationCacheSize must be positive")
	}
	if config.MutationQueueSize < 0 {
		return errors.New("MutationQueueSize must not be negative")
	}
	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return errors.Wrap(err, "LogLevel")
	}
	switch config.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("LogFormat %q must be text or json", config.LogFormat)
	}
	return nil
}
