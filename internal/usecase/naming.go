package usecase

import (
	"fmt"
	"regexp"
	"time"

	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

// TimestampLayout is the UTC, minute precision stamp embedded in backup
// file names (12 digits).
const TimestampLayout = "200601021504"

// Naming builds and recognises backup file names of the form
// <prefix>_<YYYYMMDDHHMM><extension>.
type Naming struct {
	prefix    string
	extension string
	pattern   *regexp.Regexp
}

func NewNaming(prefix, extension string) (*Naming, error) {
	if prefix == "" {
		return nil, fmt.Errorf("backup prefix cannot be empty")
	}

	pattern, err := regexp.Compile(`^` + regexp.QuoteMeta(prefix) + `_(\d{12})` + regexp.QuoteMeta(extension) + `$`)
	if err != nil {
		return nil, fmt.Errorf("compile backup name pattern: %w", err)
	}

	return &Naming{
		prefix:    prefix,
		extension: extension,
		pattern:   pattern,
	}, nil
}

// Filename returns the backup name for t, converted to UTC and truncated to
// the minute.
func (n *Naming) Filename(t time.Time) string {
	return fmt.Sprintf("%s_%s%s", n.prefix, t.UTC().Format(TimestampLayout), n.extension)
}

// Match reports whether name is a backup file name. Only the shape is
// checked; "rsvp_999999999999.sql" matches even though it is not a date.
func (n *Naming) Match(name string) bool {
	return n.pattern.MatchString(name)
}

// Timestamp parses the UTC time embedded in a backup file name.
func (n *Naming) Timestamp(name string) (time.Time, error) {
	m := n.pattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrInvalidName, name)
	}

	ts, err := time.ParseInLocation(TimestampLayout, m[1], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidName, name, err)
	}

	return ts, nil
}

func (n *Naming) Pattern() string {
	return n.pattern.String()
}
