// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the scriptkit configuration file.
// Settings come from a TOML file under the platform configuration
// directory, with defaults applied for anything the file leaves out.
package config
