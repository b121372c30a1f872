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

// Package config loads dispatcher configuration from files, raw content and
// environment variables.
//
// Sources are merged in registration order, later sources overriding
// earlier ones, then bound onto [File] and validated. Keys are
// case-insensitive except the version tokens under "lifecycle".
//
//	cfg := config.MustNew(
//	    config.WithFile("vdispatch.yaml"),
//	    config.WithEnv("VDISPATCH_"),
//	)
//	file, err := cfg.Load(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	versioning, err := file.StrategyConfig(nil)
//
// A minimal YAML file:
//
//	versioning:
//	  type: header
//	  header: X-API-Version
//	  default: ["1"]
//	lifecycle:
//	  "1":
//	    deprecated: true
//	    sunset: 2026-12-31T00:00:00Z
//	    successor: "2"
//	responses:
//	  header: true
//	  warning: true
//	logging:
//	  level: info
//	  format: json
//
// Environment variables use underscores for nesting:
// VDISPATCH_VERSIONING_TYPE=header sets versioning.type.
package config
