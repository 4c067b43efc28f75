package fsutil

import (
	"os"
	"os/user"
	"runtime"
	"strings"
)

// GetHome finds the home directory of a specified user. When given an empty
// string, it finds the home directory of the current user.
func GetHome(uname string) (string, error) {
	if uname == "" {
		return os.UserHomeDir()
	}
	u, err := user.Lookup(uname)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(u.HomeDir, "/"), nil
}

// TildeAbbr abbreviates the user's home directory to ~.
func TildeAbbr(path string) string {
	home, err := GetHome("")
	if home == "" || home == "/" {
		// If home is "" or "/", do not abbreviate because (1) it is likely a
		// problem with the environment and (2) it will make the path actually
		// longer.
		return path
	}
	if err == nil {
		if path == home {
			return "~"
		} else if strings.HasPrefix(path, home+"/") || (runtime.GOOS == "windows" && strings.HasPrefix(path, home+"\\")) {
			return "~" + path[len(home):]
		}
	}
	return path
}
