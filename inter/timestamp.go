package inter

import "time"

// Timestamp is a wall-clock instant in unix seconds, as supplied by the
// trusted clock. Zero means "unset" (for example no lockup).
type Timestamp int64

// FromUnix converts t to a Timestamp, truncating to whole seconds.
func FromUnix(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// Unix returns the seconds since the epoch.
func (t Timestamp) Unix() int64 {
	return int64(t)
}

// Time converts back to a UTC time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t Timestamp) String() string {
	if t == 0 {
		return "unset"
	}
	return t.Time().Format(time.RFC3339)
}
