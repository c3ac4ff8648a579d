package fotolia

import (
	"context"
	"fmt"
)

// GetMediaData returns everything known about a media.
func (c *Client) GetMediaData(ctx context.Context, id int64, thumbnailSize int, lang LanguageID) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetMediaData, P(
		"id", id,
		"thumbnail_size", thumbnailSize,
		"language_id", lang,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}
	return resp, nil
}

// GetBulkMediaData is GetMediaData for several ids in one call.
func (c *Client) GetBulkMediaData(ctx context.Context, ids []int64, thumbnailSize int, lang LanguageID) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetBulkMediaData, P(
		"ids", ids,
		"thumbnail_size", thumbnailSize,
		"language_id", lang,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get bulk media data: %w", err)
	}
	return resp, nil
}

// GetMediaGalleries returns the galleries a media belongs to.
func (c *Client) GetMediaGalleries(ctx context.Context, id int64, lang LanguageID, thumbnailSize int) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetMediaGalleries, P(
		"id", id,
		"language_id", lang,
		"thumbnail_size", thumbnailSize,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get galleries of media %d: %w", id, err)
	}
	return resp, nil
}

// GetMedia purchases a media under licenseName and returns its download
// URL in the "url" field. subaccountID 0 buys for the main account.
func (c *Client) GetMedia(ctx context.Context, id int64, licenseName string, subaccountID int64) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetMedia, P(
		"id", id,
		"license_name", licenseName,
		"subaccount_id", optional(subaccountID),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to purchase media %d: %w", id, err)
	}
	return resp, nil
}

// GetMediaComp returns the comp (preview) image of a media. Comps are for
// evaluation only.
func (c *Client) GetMediaComp(ctx context.Context, id int64) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetMediaComp, P("id", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get comp of media %d: %w", id, err)
	}
	return resp, nil
}

// DownloadMedia downloads a purchased media. A session is required.
func (c *Client) DownloadMedia(ctx context.Context, downloadURL, path string) error {
	return c.DownloadFile(ctx, downloadURL, path, true)
}

// DownloadMediaComp downloads a comp image. No session is required.
func (c *Client) DownloadMediaComp(ctx context.Context, downloadURL, path string) error {
	return c.DownloadFile(ctx, downloadURL, path, false)
}
