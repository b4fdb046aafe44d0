package bump

import (
	"os"
	"time"

	"bumpdeps/internal/types"

	json "github.com/goccy/go-json"
)

var timeNow = time.Now

func EpochTime() int64 {
	return timeNow().Unix()
}

func SetTimeNowFn(f func() time.Time) {
	timeNow = f
}

func RestoreTimeNow() {
	timeNow = time.Now
}

// WriteReport writes the report as indented JSON.
func WriteReport(path string, report types.Report) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
