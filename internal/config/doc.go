// Package config provides configuration loading and validation for the
// transcription tool. It handles YAML-based configuration with struct
// validation and an environment fallback for the API credential.
package config
