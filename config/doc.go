// Package config provides unified configuration loading for the TradeFlow
// toolchain: defaults, then an optional YAML file, then environment
// variable overrides with the TRADEFLOW_ prefix.
package config
