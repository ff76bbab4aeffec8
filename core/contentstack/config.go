package contentstack

// Config holds configuration for the Contentstack management API.
type Config struct {
	// Host is the API host, or a full base URL including the scheme.
	Host string `mapstructure:"host" env:"HOST_NAME" default:"api.contentstack.io"`
	// Token is the management/auth token sent as the authtoken header.
	Token string `mapstructure:"token" default:""`
	// Branch is the stack branch sent with every request.
	Branch string `mapstructure:"branch" env:"BRANCH" default:"main"`
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// PageSize is the fixed number of items requested per listing page.
const PageSize = 100
