package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Config is the YAML run file accepted by --config. Every field can be
// overridden from the command line.
type Config struct {
	ARFF       string `yaml:"arff"`
	Learner    string `yaml:"learner"`
	Evaluation struct {
		Method    string `yaml:"method"`
		Parameter string `yaml:"parameter"`
	} `yaml:"evaluation"`
	Verbose     bool   `yaml:"verbose"`
	Normalize   bool   `yaml:"normalize"`
	Seed        uint64 `yaml:"seed"`
	Repetitions int    `yaml:"repetitions"`
	Log         struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		JSON       bool   `yaml:"json"`
	} `yaml:"log"`
	History string `yaml:"history"`
	Plot    string `yaml:"plot"`
}

func defaultConfig() *Config {
	return &Config{Repetitions: 1}
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", path)
	}
	defer file.Close()

	config := defaultConfig()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return config, nil
}
