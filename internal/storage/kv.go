package storage

import "errors"

// Keys the tracker persists under. The names match the browser-era
// localStorage keys so exported data drops straight in.
const (
	KeyTasks        = "tasks"
	KeySelectedDate = "selectedDate"
	KeyStartDate    = "startDate"
)

// ErrLocked is returned when another process holds the data directory.
var ErrLocked = errors.New("storage: data directory locked by another process")

// KV is the persistence contract: opaque text values by key. Load
// reports a missing key through ok rather than an error; errors are
// reserved for the backend failing.
type KV interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Close() error
}
