package util

import (
	"github.com/rs/xid"
)

// GenSubmissionID generates an ID used to correlate the log lines of one
// submission. IDs are globally unique and sortable.
func GenSubmissionID() string {
	return xid.New().String()
}
