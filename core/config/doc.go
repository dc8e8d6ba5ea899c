// Package config assembles the runtime configuration of webreader.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults ([webfetch.DefaultConfig], [websearch.Config.WithDefaults]);
//  2. an optional YAML file;
//  3. variables from .env files, loaded with godotenv without overriding the
//     real environment;
//  4. WEBREADER_* environment variables and BRAVE_API_KEY.
//
// See webreader.example.yaml at the repository root for every key.
package config
