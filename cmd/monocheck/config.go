// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the application configuration. Values may be loaded from a TOML file;
// flags given on the command line take precedence.
type Config struct {
	ConfigFile  string `toml:"-"`
	PointerSize int    `toml:"pointer_size"`
	Jobs        int    `toml:"jobs"`
	Layout      bool   `toml:"layout"`
	Dump        bool   `toml:"dump"`
	Debug       bool   `toml:"debug"`
}

func defaultConfig() Config {
	return Config{PointerSize: 8, Jobs: runtime.NumCPU()}
}

// loadConfig decodes path into cfg. Keys which are not recognized are rejected.
func loadConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "failed to load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("config %s: unknown key %s", path, undecoded[0])
	}
	return nil
}

func (cfg Config) validate() error {
	switch cfg.PointerSize {
	case 4, 8:
	default:
		return errors.Errorf("pointer size must be 4 or 8, got %d", cfg.PointerSize)
	}
	if cfg.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}
	return nil
}
