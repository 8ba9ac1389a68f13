// Package config provides configuration loading, merging, and validation
// for the sync server and the headless sync client.
//
// Configuration is assembled from multiple sources in the following
// priority order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
