package apiclient

import (
	"fmt"
	"os"
	"path/filepath"

	persistentjar "github.com/juju/persistent-cookiejar"
)

// OpenCookieJar loads the cookie jar stored at path, creating its directory
// when needed. Cookies with an expiry are written back by Save.
func OpenCookieJar(path string) (*persistentjar.Jar, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("cookie jar dir: %w", err)
	}
	jar, err := persistentjar.New(&persistentjar.Options{Filename: path})
	if err != nil {
		return nil, fmt.Errorf("cookie jar %s: %w", path, err)
	}
	return jar, nil
}
