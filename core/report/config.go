package report

const (
	// FormatDetailed writes every key with its status and the sizes seen on each backend.
	FormatDetailed = "detailed"
	// FormatSizes writes a flat key to size mapping.
	FormatSizes = "sizes"
)

// Config holds the names and format of the report files.
type Config struct {
	// Format selects the per-bucket report layout (detailed, sizes).
	Format string `mapstructure:"format" default:"detailed"`
	// DetailsPrefix is prepended to the bucket name to form the per-bucket report file name.
	DetailsPrefix string `mapstructure:"details_prefix" default:"rados_copy_details_"`
	// DetailsFile is the aggregate list of mismatching buckets, appended on every run.
	DetailsFile string `mapstructure:"details_file" default:"rados_copy_details"`
	// StatusFile holds "1" once any run found a mismatch, "0" otherwise.
	StatusFile string `mapstructure:"status_file" default:"rados_copy_status"`
}

// IsValidFormat checks if the configured format is known.
func (c Config) IsValidFormat() bool {
	switch c.Format {
	case FormatDetailed, FormatSizes:
		return true
	default:
		return false
	}
}
