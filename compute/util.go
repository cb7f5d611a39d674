package compute

import (
	"fmt"
	"os"
	"os/user"
)

// CurrentUser detects the name of the user running this process,
// whose jobs are listed when throttling.
func CurrentUser() (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	for _, env := range []string{"USER", "LOGNAME"} {
		if name := os.Getenv(env); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("failed to detect current user: %v", err)
}

// UserOrCurrent returns name, or the current user when name is empty.
func UserOrCurrent(name string) (string, error) {
	if name != "" {
		return name, nil
	}
	return CurrentUser()
}
