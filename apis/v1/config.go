package v1

// Config is the optional oarchive configuration file. Command-line flags take
// precedence over anything set here.
type Config struct {
	Log     *LogSpec     `yaml:"log,omitempty" toml:"log,omitempty" json:"log,omitempty"`
	Extract *ExtractSpec `yaml:"extract,omitempty" toml:"extract,omitempty" json:"extract,omitempty"`
}

// LogSpec configures logging.
type LogSpec struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string       `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	File  *LogFileSpec `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty"`
}

// LogFileSpec configures a rotated log file written next to stderr output.
type LogFileSpec struct {
	Path string `yaml:"path" toml:"path" json:"path" validate:"required"`
	// MaxSizeMB is the size at which the file is rotated (default: 100).
	MaxSizeMB  int  `yaml:"max_size_mb,omitempty" toml:"max_size_mb,omitempty" json:"max_size_mb,omitempty" validate:"gte=0"`
	MaxBackups int  `yaml:"max_backups,omitempty" toml:"max_backups,omitempty" json:"max_backups,omitempty" validate:"gte=0"`
	MaxAgeDays int  `yaml:"max_age_days,omitempty" toml:"max_age_days,omitempty" json:"max_age_days,omitempty" validate:"gte=0"`
	Compress   bool `yaml:"compress,omitempty" toml:"compress,omitempty" json:"compress,omitempty"`
}

// ExtractSpec configures where extracted members go.
type ExtractSpec struct {
	// Destination defaults to the working directory.
	Destination *DestinationSpec `yaml:"destination,omitempty" toml:"destination,omitempty" json:"destination,omitempty"`

	// Repack collects the extracted members into a single archive written to
	// the destination instead of one file per member.
	Repack *RepackSpec `yaml:"repack,omitempty" toml:"repack,omitempty" json:"repack,omitempty"`
}

// DestinationSpec selects one destination (one of the fields should be set).
type DestinationSpec struct {
	Stdout     *StdoutSpec     `yaml:"stdout,omitempty" toml:"stdout,omitempty" json:"stdout,omitempty"`
	Filesystem *FilesystemSpec `yaml:"filesystem,omitempty" toml:"filesystem,omitempty" json:"filesystem,omitempty"`
	S3         *S3Spec         `yaml:"s3,omitempty" toml:"s3,omitempty" json:"s3,omitempty"`
}

// StdoutSpec writes member payloads back to back on stdout (no options currently).
type StdoutSpec struct{}

// FilesystemSpec extracts below a directory.
type FilesystemSpec struct {
	Path string `yaml:"path" toml:"path" json:"path" validate:"required"`
}

// S3Spec uploads each member as an object.
type S3Spec struct {
	Bucket string `yaml:"bucket" toml:"bucket" json:"bucket" validate:"required"`
	Prefix string `yaml:"prefix,omitempty" toml:"prefix,omitempty" json:"prefix,omitempty"`
	Region string `yaml:"region,omitempty" toml:"region,omitempty" json:"region,omitempty"`
	// Endpoint targets S3-compatible services such as MinIO or R2.
	Endpoint       string         `yaml:"endpoint,omitempty" toml:"endpoint,omitempty" json:"endpoint,omitempty" validate:"omitempty,url"`
	ForcePathStyle bool           `yaml:"force_path_style,omitempty" toml:"force_path_style,omitempty" json:"force_path_style,omitempty"`
	Credentials    *S3Credentials `yaml:"credentials,omitempty" toml:"credentials,omitempty" json:"credentials,omitempty"`
}

// S3Credentials are static keys. Without them the default AWS chain is used.
type S3Credentials struct {
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id" json:"access_key_id" validate:"required"`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key" json:"secret_access_key" validate:"required"`
}

// RepackSpec configures the archive extracted members are collected into.
type RepackSpec struct {
	Format      string `yaml:"format" toml:"format" json:"format" validate:"required,oneof=oar tar zip"`
	Compression string `yaml:"compression,omitempty" toml:"compression,omitempty" json:"compression,omitempty" validate:"omitempty,oneof=none gzip zstd deflate"`
	// Name is the archive file name (default: "extracted-<UTC timestamp>"
	// plus the format extension).
	Name string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
}
