package fotolia

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds the number of comps fetched at once.
const DefaultBatchConcurrency = 4

// BatchDownloadResult contains the results of a batch download
type BatchDownloadResult struct {
	Requested int
	Saved     []SavedFile
	Failed    []DownloadError
}

// SavedFile is one successful download of a batch.
type SavedFile struct {
	MediaID int64
	Path    string
}

// DownloadError contains information about a failed download
type DownloadError struct {
	MediaID int64
	Err     error
}

// Error implements the error interface
func (e DownloadError) Error() string {
	return fmt.Sprintf("failed to download media %d: %v", e.MediaID, e.Err)
}

// Unwrap returns the underlying error.
func (e DownloadError) Unwrap() error { return e.Err }

// DownloadComps resolves the comp of every id and saves it into dir as
// <id><ext>. At most concurrency downloads run at once; a failure does not
// stop the others. Results are ordered by media id.
func (c *Client) DownloadComps(ctx context.Context, ids []int64, dir string, concurrency int) BatchDownloadResult {
	result := BatchDownloadResult{
		Requested: len(ids),
	}

	if len(ids) == 0 {
		return result
	}
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	savedChan := make(chan SavedFile, len(ids))
	errorChan := make(chan DownloadError, len(ids))

	for _, id := range ids {
		id := id
		g.Go(func() error {
			saved, err := c.downloadComp(ctx, id, dir)
			if err != nil {
				c.logger.Warn().Err(err).Int64("media_id", id).Msg("Comp download failed")
				errorChan <- DownloadError{MediaID: id, Err: err}
			} else {
				savedChan <- saved
			}
			return nil // Don't stop on individual errors
		})
	}

	_ = g.Wait()
	close(savedChan)
	close(errorChan)

	for saved := range savedChan {
		result.Saved = append(result.Saved, saved)
	}
	for err := range errorChan {
		result.Failed = append(result.Failed, err)
	}

	slices.SortFunc(result.Saved, func(a, b SavedFile) int { return compareID(a.MediaID, b.MediaID) })
	slices.SortFunc(result.Failed, func(a, b DownloadError) int { return compareID(a.MediaID, b.MediaID) })

	return result
}

func (c *Client) downloadComp(ctx context.Context, id int64, dir string) (SavedFile, error) {
	resp, err := c.GetMediaComp(ctx, id)
	if err != nil {
		return SavedFile{}, err
	}

	compURL := resp.String("url")
	if compURL == "" {
		return SavedFile{}, &TransportError{Reason: "getMediaComp response has no url"}
	}

	target := filepath.Join(dir, strconv.FormatInt(id, 10)+compExtension(compURL))
	if err := c.DownloadMediaComp(ctx, compURL, target); err != nil {
		return SavedFile{}, err
	}
	return SavedFile{MediaID: id, Path: target}, nil
}

// compExtension returns the file extension of a comp URL, ".jpg" when it has
// none.
func compExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
		return ext
	}
	return ".jpg"
}

func compareID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
