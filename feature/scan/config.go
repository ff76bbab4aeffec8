package scan

// Config holds report destinations and scan behavior.
type Config struct {
	// OutputFile is the report destination of local scans.
	OutputFile string `mapstructure:"output_file" env:"OUTPUT_FILE" default:"./local-unused-assets.csv"`
	// OutputPath is the report destination of remote scans.
	OutputPath string `mapstructure:"output_path" env:"OUTPUT_PATH" default:"./remote-unused-assets.csv"`
	// EmptyFolderCheck adds empty folders to the report.
	EmptyFolderCheck bool `mapstructure:"empty_folder_check" env:"ENABLE_EMPTY_FOLDER_CHECK" default:"true"`
	// Concurrency bounds reference and folder checks in flight.
	Concurrency int `mapstructure:"concurrency" default:"10"`
	// ExcludeFailedChecks keeps assets whose reference lookup failed out of the report.
	ExcludeFailedChecks bool `mapstructure:"exclude_failed_checks" default:"false"`
}
