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
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"rivaas.dev/vdispatch/config/codec"
	"rivaas.dev/vdispatch/config/source"
)

// tagName is the struct tag used for binding and for validation messages.
const tagName = "config"

// Source loads one layer of configuration.
// Load must be safe to call concurrently.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

// Option configures a Config.
type Option func(c *Config) error

// Config merges its sources into a [File].
// Config is safe for concurrent use.
type Config struct {
	sources  []Source
	validate *validator.Validate

	mu     sync.RWMutex
	values map[string]any
	file   *File
}

// WithSource adds a custom source.
func WithSource(src Source) Option {
	return func(c *Config) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		c.sources = append(c.sources, src)

		return nil
	}
}

// WithFile loads a file whose format follows its extension
// (.yaml, .yml, .json, .toml, .env). Environment variables in path are
// expanded.
//
// Example:
//
//	config.WithFile("${CONFIG_DIR}/vdispatch.yaml")
func WithFile(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}

		return c.addFile(path, format)
	}
}

// WithFileAs loads a file with an explicit format.
func WithFileAs(path string, format codec.Type) Option {
	return func(c *Config) error {
		return c.addFile(os.ExpandEnv(path), format)
	}
}

func (c *Config) addFile(path string, format codec.Type) error {
	dec, err := codec.Lookup(format)
	if err != nil {
		return NewError("file-source", "get-decoder", err)
	}
	c.sources = append(c.sources, source.NewFile(path, dec))

	return nil
}

// WithContent loads raw data in the given format.
//
// Example:
//
//	config.WithContent([]byte("versioning:\n  type: uri\n"), codec.TypeYAML)
func WithContent(data []byte, format codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.Lookup(format)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewContent(data, dec))

		return nil
	}
}

// WithEnv loads environment variables starting with prefix.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, source.NewEnv(prefix))
		return nil
	}
}

// New returns a Config with the given options applied.
// Option errors are joined; the partially built Config is still returned.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		validate: newValidator(),
		values:   map[string]any{},
	}

	var errs error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return c, errs
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Config {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to create config: %v", err))
	}

	return c
}

// Load reads every source, merges them over [Defaults], binds the result
// and validates it. The stored values are only replaced on success.
//
// Errors:
//   - [*Error] with Operation "load" or "merge" when a source fails
//   - [*Error] with Operation "bind" when a value has the wrong shape
//   - [*Error] with Operation "validate" and Field set when validation fails
func (c *Config) Load(ctx context.Context) (*File, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	values := Defaults()
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		layer, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if err = mergo.Map(&values, normalizeKeys(layer, nil), mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	file := &File{}
	if err := decode(values, file); err != nil {
		return nil, NewError("binding", "bind", err)
	}
	if err := c.check(file); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.values = values
	c.file = file
	c.mu.Unlock()

	return file, nil
}

// MustLoad is like Load but panics on error.
func (c *Config) MustLoad(ctx context.Context) *File {
	file, err := c.Load(ctx)
	if err != nil {
		panic(err)
	}

	return file
}

// File returns the last successfully loaded file, or nil.
func (c *Config) File() *File {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.file
}

// Get returns the raw merged value at a dot separated path, or nil.
func (c *Config) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var current any = c.values
	for part := range strings.SplitSeq(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = m[part]; !ok {
			if current, ok = m[strings.ToLower(part)]; !ok {
				return nil
			}
		}
	}

	return current
}

// String returns the value at key converted to a string.
func (c *Config) String(key string) string {
	return cast.ToString(c.Get(key))
}

// Bool returns the value at key converted to a bool.
func (c *Config) Bool(key string) bool {
	return cast.ToBool(c.Get(key))
}

// StringSlice returns the value at key converted to a string slice.
// A comma separated string is split.
func (c *Config) StringSlice(key string) []string {
	v := c.Get(key)
	if s, ok := v.(string); ok {
		return splitList(s)
	}

	return cast.ToStringSlice(v)
}

func (c *Config) check(file *File) error {
	err := c.validate.Struct(file)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return NewFieldError("validation", first.Namespace(), "validate",
			fmt.Errorf("failed on %q: %w", first.Tag(), err))
	}

	return NewError("validation", "validate", err)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get(tagName), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func decode(values map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			castHook(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		Result: out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	return dec.Decode(values)
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	stringSliceType = reflect.TypeOf([]string(nil))
)

// castHook converts loosely typed inputs with spf13/cast: dates in any
// common layout into time.Time, and scalars, comma lists or mixed lists
// into []string.
func castHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		switch to {
		case timeType:
			if from == timeType {
				return data, nil
			}
			if s, ok := data.(string); ok && strings.TrimSpace(s) == "" {
				return time.Time{}, nil
			}

			return cast.ToTimeE(data)
		case stringSliceType:
			if s, ok := data.(string); ok {
				return splitList(s), nil
			}
			if from.Kind() == reflect.Slice {
				return cast.ToStringSliceE(data)
			}

			single, err := cast.ToStringE(data)
			if err != nil {
				return nil, err
			}

			return []string{single}, nil
		}

		return data, nil
	}
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// normalizeKeys lowercases map keys recursively, except the version tokens
// directly under "lifecycle", which are case-sensitive.
func normalizeKeys(m map[string]any, parent []string) map[string]any {
	if m == nil {
		return map[string]any{}
	}

	preserve := len(parent) == 1 && parent[0] == "lifecycle"
	out := make(map[string]any, len(m))
	for k, v := range m {
		key := k
		if !preserve {
			key = strings.ToLower(k)
		}
		if nested, ok := v.(map[string]any); ok {
			v = normalizeKeys(nested, append(parent, key))
		}
		out[key] = v
	}

	return out
}
