// Package config loads runtime settings for slieker-ics from the environment
// and an optional .env file.
package config
