package test

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// WORKSPACE_TEST_DEBUG raises the logger level for scenario debugging
	Debug bool `envconfig:"WORKSPACE_TEST_DEBUG" default:"false"`
	// WORKSPACE_TEST_PAGE_SIZE overrides the pagination window of the scenario
	PageSize int `envconfig:"WORKSPACE_TEST_PAGE_SIZE" default:"50"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
