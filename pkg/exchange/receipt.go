package exchange

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/filesystem"
)

const (
	// TimestampFileName is the name of the timestamp file written into each
	// submission copy.
	TimestampFileName = "timestamp.txt"
	// receiptFileNameFormat is the format of the per-user receipt file name.
	receiptFileNameFormat = "%s_info.txt"
)

// ReceiptFileName computes the receipt file name for the specified user.
func ReceiptFileName(username string) string {
	return fmt.Sprintf(receiptFileNameFormat, username)
}

// WriteReceipt writes a fixed-format plain-text submission receipt to the
// specified path, overwriting any prior receipt for the same attempt.
func WriteReceipt(path, username, hashcode, timestamp string) error {
	contents := fmt.Sprintf("Username: %s\nHashcode: %s\nTimestamp: %s\n", username, hashcode, timestamp)
	if err := filesystem.WriteFileAtomic(path, []byte(contents), 0644); err != nil {
		return errors.Wrap(err, "unable to write receipt")
	}
	return nil
}

// WriteTimestamp writes the single-line timestamp file into a submission
// copy.
func WriteTimestamp(path, timestamp string) error {
	if err := filesystem.WriteFileAtomic(path, []byte(timestamp), 0644); err != nil {
		return errors.Wrap(err, "unable to write timestamp")
	}
	return nil
}
