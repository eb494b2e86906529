package remote

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/atticlabs/attic/internal/branding"
)

// FetchInstaller downloads the installer payload for titleID into destDir
// and returns the path of the written file. The file name comes from the
// service's Content-Disposition header, falling back to "<titleID>.bin".
// Progress is reported to progress (pass nil to stay quiet).
func (c *Client) FetchInstaller(session *Session, titleID, destDir string, progress io.Writer) (string, error) {
	req, err := http.NewRequest("GET", c.baseURL+"/v1/titles/"+titleID+"/installer", nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())
	req.Header.Set("Authorization", "Bearer "+session.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Op: "downloading installer", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", ErrAuthExpired
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("no installer published for title %s", titleID)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("installer download returned status %d", resp.StatusCode)
	}

	destPath := filepath.Join(destDir, installerFileName(resp, titleID))

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	total := resp.ContentLength
	var downloaded int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return "", fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			if total > 0 && progress != nil {
				percent := int(downloaded * 100 / total)
				if percent != lastPercent {
					fmt.Fprintf(progress, "\rDownloading... %d%%", percent)
					lastPercent = percent
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", &NetworkError{Op: "reading download stream", Err: readErr}
		}
	}
	if total > 0 && progress != nil {
		fmt.Fprintln(progress)
	}

	return destPath, nil
}

// installerFileName picks a file name for the downloaded payload from the
// Content-Disposition header, falling back to "<titleID>.bin". The name is
// flattened to its base to keep the write inside destDir.
func installerFileName(resp *http.Response, titleID string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := filepath.Base(params["filename"]); name != "." && name != string(filepath.Separator) && name != "" {
				return name
			}
		}
	}
	return titleID + ".bin"
}
