package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notes2docs/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CredentialsConfig says where the service-account key lives. File is read
// as plain JSON; SealedFile is an encrypted copy produced by "notes2docs seal".
// File wins when both are set.
type CredentialsConfig struct {
	File       string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
	SealedFile string `json:"sealed_file,omitempty" yaml:"sealed_file,omitempty" mapstructure:"sealed_file"`
}

// IsEmpty reports whether no credential source is configured.
func (c CredentialsConfig) IsEmpty() bool {
	return c.File == "" && c.SealedFile == ""
}

// DocsConfig holds settings for the document service client.
type DocsConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DocsEndpoint is the documents collection URL.
	DocsEndpoint string `json:"docs_endpoint" yaml:"docs_endpoint" mapstructure:"docs_endpoint"`

	// DriveEndpoint is the files collection URL used for permissions.
	DriveEndpoint string `json:"drive_endpoint" yaml:"drive_endpoint" mapstructure:"drive_endpoint"`
}

// ShareRole is the permission role granted when sharing with a user.
type ShareRole string

const (
	RoleWriter    ShareRole = "writer"
	RoleCommenter ShareRole = "commenter"
	RoleReader    ShareRole = "reader"
)

// Valid reports whether r is a role the service accepts.
func (r ShareRole) Valid() bool {
	switch r {
	case RoleWriter, RoleCommenter, RoleReader:
		return true
	}
	return false
}

// ShareConfig controls how a freshly created document is shared.
type ShareConfig struct {
	// Email shares with one user. Empty means "use Public".
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`

	// Role is granted to Email (default writer).
	Role ShareRole `json:"role" yaml:"role" mapstructure:"role"`

	// Public makes the document readable by anyone with the link when no
	// Email is given.
	Public bool `json:"public" yaml:"public" mapstructure:"public"`
}

// PublishConfig groups everything the publish pipeline needs.
type PublishConfig struct {
	// Title is the fallback document title.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// HistoryDir holds the publication history database.
	HistoryDir string `json:"history_dir" yaml:"history_dir" mapstructure:"history_dir"`

	Credentials CredentialsConfig `json:"credentials" yaml:"credentials" mapstructure:"credentials"`
	Docs        DocsConfig        `json:"docs" yaml:"docs" mapstructure:"docs"`
	Share       ShareConfig       `json:"share" yaml:"share" mapstructure:"share"`
}
