// Package config handles assetd configuration.
//
// Configuration is loaded from a YAML file (ASSETD_CONFIG_PATH, default
// /etc/assetd/config/assetd.yml) with environment variable overrides, and
// tracks the source of every value. The module consolidation map used by
// the permission matrix UI lives in its own YAML file and can be watched
// for changes at runtime.
package config
