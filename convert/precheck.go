package convert

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckWritable verifies the current user may create files in root.
func CheckWritable(root string) error {
	if err := unix.Access(root, unix.W_OK); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNoPermission, root, err)
	}
	return nil
}
