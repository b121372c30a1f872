// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"maps"
	"slices"
	"time"

	"rivaas.dev/vdispatch/logging"
	"rivaas.dev/vdispatch/strategy"
	"rivaas.dev/vdispatch/version"
)

// File is the bound configuration document.
type File struct {
	Versioning Versioning           `config:"versioning"`
	Lifecycle  map[string]Lifecycle `config:"lifecycle" validate:"dive"`
	Responses  Responses            `config:"responses"`
	Logging    Logging              `config:"logging"`
}

// Versioning selects and parameterizes the versioning strategy.
type Versioning struct {
	Type    string   `config:"type" validate:"required,oneof=custom header media-type uri"`
	Header  string   `config:"header" validate:"required_if=Type header"`
	Key     string   `config:"key" validate:"required_if=Type media-type"`
	Prefix  string   `config:"prefix" validate:"excludesall=/"`
	Default []string `config:"default" validate:"dive,required"`
}

// Lifecycle describes one version's support window.
type Lifecycle struct {
	Deprecated bool      `config:"deprecated"`
	Since      time.Time `config:"since"` // only read when Deprecated is set
	Sunset     time.Time `config:"sunset"`
	Migration  string    `config:"migration" validate:"omitempty,url"`
	Successor  string    `config:"successor"`
}

// Responses toggles version related response behavior.
type Responses struct {
	// Header echoes the executed version in X-API-Version.
	Header bool `config:"header"`
	// Warning adds "Warning: 299" to responses from deprecated versions.
	Warning bool `config:"warning"`
	// Enforce answers 410 Gone after a version's sunset date.
	Enforce bool `config:"enforce"`
}

// Logging configures the process logger.
type Logging struct {
	Level       string `config:"level" validate:"omitempty,oneof=debug info warn error"`
	Format      string `config:"format" validate:"omitempty,oneof=json text"`
	Service     string `config:"service"`
	Version     string `config:"version"`
	Environment string `config:"environment"`
}

// Defaults returns the values every load starts from.
func Defaults() map[string]any {
	return map[string]any{
		"versioning": map[string]any{
			"type":   string(strategy.Header),
			"header": "X-API-Version",
		},
		"logging": map[string]any{
			"level":  "info",
			"format": string(logging.JSONHandler),
		},
	}
}

// StrategyConfig converts the versioning section.
// extractor is required when the type is custom and ignored otherwise.
func (f *File) StrategyConfig(extractor version.Extractor) (strategy.Config, error) {
	cfg := strategy.Config{
		Type:    strategy.Type(f.Versioning.Type),
		Header:  f.Versioning.Header,
		Key:     f.Versioning.Key,
		Prefix:  f.Versioning.Prefix,
		Default: slices.Clone(f.Versioning.Default),
	}
	if cfg.Type == strategy.Custom {
		cfg.Extractor = extractor
	}
	if err := cfg.Validate(); err != nil {
		return strategy.Config{}, NewFieldError("versioning", "type", "convert", err)
	}

	return cfg, nil
}

// LifecycleOptions returns lifecycle options keyed by version token.
func (f *File) LifecycleOptions() map[string][]version.LifecycleOption {
	out := make(map[string][]version.LifecycleOption, len(f.Lifecycle))
	for _, token := range slices.Sorted(maps.Keys(f.Lifecycle)) {
		out[token] = f.Lifecycle[token].options()
	}

	return out
}

func (lc Lifecycle) options() []version.LifecycleOption {
	var opts []version.LifecycleOption
	switch {
	case lc.Deprecated && !lc.Since.IsZero():
		opts = append(opts, version.DeprecatedSince(lc.Since))
	case lc.Deprecated:
		opts = append(opts, version.Deprecated())
	}
	if !lc.Sunset.IsZero() {
		opts = append(opts, version.Sunset(lc.Sunset))
	}
	if lc.Migration != "" {
		opts = append(opts, version.MigrationDocs(lc.Migration))
	}
	if lc.Successor != "" {
		opts = append(opts, version.SuccessorVersion(lc.Successor))
	}

	return opts
}

// LoggingOptions converts the logging section.
func (f *File) LoggingOptions() []logging.Option {
	opts := []logging.Option{logging.WithLevelName(f.Logging.Level)}
	if f.Logging.Format != "" {
		opts = append(opts, logging.WithHandlerType(logging.HandlerType(f.Logging.Format)))
	}
	if f.Logging.Service != "" {
		opts = append(opts, logging.WithServiceName(f.Logging.Service))
	}
	if f.Logging.Version != "" {
		opts = append(opts, logging.WithServiceVersion(f.Logging.Version))
	}
	if f.Logging.Environment != "" {
		opts = append(opts, logging.WithEnvironment(f.Logging.Environment))
	}

	return opts
}
