// Package config provides configuration management for asset-janitor.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file in the working directory.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Contentstack: API host, auth token, branch and request timeout
//   - Scan: report destinations, empty-folder check toggle, concurrency
//   - Storage: S3/MinIO credentials for s3:// report locations
//   - Log: logging level and format
//   - Metrics: OpenTelemetry export toggle and collector endpoint
//
// Nested keys map to upper-case environment variables (contentstack.token ->
// CONTENTSTACK_TOKEN). Fields tagged with env also accept the short names used by
// existing deployments, e.g. HOST_NAME, BRANCH, OUTPUT_FILE, OUTPUT_PATH and
// ENABLE_EMPTY_FOLDER_CHECK.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Contentstack.Host)
package config
