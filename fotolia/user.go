package fotolia

import (
	"context"
	"fmt"
)

// LoginUser authenticates a member and keeps the returned session token.
func (c *Client) LoginUser(ctx context.Context, login, password string) error {
	resp, err := c.Call(ctx, MethodLoginUser, P("login", login, "pass", password))
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	token := resp.String("session_token")
	if token == "" {
		return fmt.Errorf("failed to log in: %w", &TransportError{Reason: "loginUser response has no session_token"})
	}
	c.session.set(token)

	c.logger.Debug().Str("login", login).Msg("Logged in to Fotolia")
	return nil
}

// LogoutUser forgets the session token. It makes no request.
func (c *Client) LogoutUser() {
	c.Logout()
}

// requiredUserProperties must be non-empty for CreateUser.
var requiredUserProperties = []string{"login", "password", "email", "language_id"}

// CreateUser registers a new member.
func (c *Client) CreateUser(ctx context.Context, properties Params) (*Response, error) {
	for _, name := range requiredUserProperties {
		v, ok := properties.Get(name)
		if !ok || v == nil || fmt.Sprint(v) == "" || fmt.Sprint(v) == "0" {
			return nil, fmt.Errorf("missing required property: %s", name)
		}
	}

	resp, err := c.Call(ctx, MethodCreateUser, P("properties", properties))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return resp, nil
}

// GetUserData returns the profile of the logged in member.
func (c *Client) GetUserData(ctx context.Context) (*Response, error) {
	return c.userCall(ctx, MethodGetUserData, nil, "failed to get user data")
}

// SalesQuery holds the optional arguments of GetSalesData.
type SalesQuery struct {
	Type     SalesType
	Offset   int
	Limit    int
	MediaID  int64
	SalesDay string
}

// GetSalesData returns the sales of the logged in member.
func (c *Client) GetSalesData(ctx context.Context, q SalesQuery) (*Response, error) {
	if q.Type == "" {
		q.Type = SalesAll
	}
	if !q.Type.Valid() {
		return nil, fmt.Errorf("undefined sales type: %s", q.Type)
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	return c.userCall(ctx, MethodGetSalesData, P(
		"sales_type", q.Type,
		"offset", q.Offset,
		"limit", q.Limit,
		"id", optional(q.MediaID),
		"sales_day", optional(q.SalesDay),
	), "failed to get sales data")
}

// StatsQuery holds the arguments of GetUserAdvancedStats.
type StatsQuery struct {
	Type           string
	TimeRange      string
	EasyDatePeriod string
	StartDate      string
	EndDate        string
}

// GetUserAdvancedStats returns sales, views or income statistics.
func (c *Client) GetUserAdvancedStats(ctx context.Context, q StatsQuery) (*Response, error) {
	return c.userCall(ctx, MethodGetUserAdvancedStats, P(
		"type", q.Type,
		"time_range", q.TimeRange,
		"easy_date_periods", optional(q.EasyDatePeriod),
		"start_date", optional(q.StartDate),
		"end_date", optional(q.EndDate),
	), "failed to get advanced stats")
}

// GetUserStats returns the statistics of the logged in member.
func (c *Client) GetUserStats(ctx context.Context) (*Response, error) {
	return c.userCall(ctx, MethodGetUserStats, nil, "failed to get user stats")
}

// GetUserGalleries returns the private galleries of the logged in member.
func (c *Client) GetUserGalleries(ctx context.Context) (*Response, error) {
	return c.userCall(ctx, MethodGetUserGalleries, nil, "failed to get user galleries")
}

// GalleryPage selects a page of GetUserGalleryMedias. An empty GalleryID
// means the lightbox.
type GalleryPage struct {
	Page          int
	PerPage       int
	ThumbnailSize int
	GalleryID     string
}

// GetUserGalleryMedias lists the media of a gallery or the lightbox.
func (c *Client) GetUserGalleryMedias(ctx context.Context, q GalleryPage) (*Response, error) {
	if q.PerPage == 0 {
		q.PerPage = 32
	}
	if q.ThumbnailSize == 0 {
		q.ThumbnailSize = DefaultThumbnailSize
	}
	return c.userCall(ctx, MethodGetUserGalleryMedias, P(
		"page", q.Page,
		"nb_per_page", q.PerPage,
		"thumbnail_size", q.ThumbnailSize,
		"id", q.GalleryID,
	), "failed to get gallery medias")
}

// CreateUserGallery creates a gallery named name.
func (c *Client) CreateUserGallery(ctx context.Context, name string) (*Response, error) {
	return c.userCall(ctx, MethodCreateUserGallery, P("name", name), "failed to create gallery")
}

// DeleteUserGallery deletes a gallery.
func (c *Client) DeleteUserGallery(ctx context.Context, galleryID string) error {
	_, err := c.userCall(ctx, MethodDeleteUserGallery, P("id", galleryID), "failed to delete gallery")
	return err
}

// AddToUserGallery adds a media to a gallery, or to the lightbox when
// galleryID is empty.
func (c *Client) AddToUserGallery(ctx context.Context, contentID int64, galleryID string) (*Response, error) {
	return c.galleryMedia(ctx, MethodAddToUserGallery, contentID, galleryID)
}

// RemoveFromUserGallery removes a media from a gallery or the lightbox.
func (c *Client) RemoveFromUserGallery(ctx context.Context, contentID int64, galleryID string) (*Response, error) {
	return c.galleryMedia(ctx, MethodRemoveFromUserGallery, contentID, galleryID)
}

// MoveUpMediaInUserGallery moves a media one position up.
func (c *Client) MoveUpMediaInUserGallery(ctx context.Context, contentID int64, galleryID string) error {
	_, err := c.galleryMedia(ctx, MethodMoveUpMediaInUserGallery, contentID, galleryID)
	return err
}

// MoveDownMediaInUserGallery moves a media one position down.
func (c *Client) MoveDownMediaInUserGallery(ctx context.Context, contentID int64, galleryID string) error {
	_, err := c.galleryMedia(ctx, MethodMoveDownMediaInUserGallery, contentID, galleryID)
	return err
}

// MoveMediaToTopInUserGallery moves a media to the first position.
func (c *Client) MoveMediaToTopInUserGallery(ctx context.Context, contentID int64, galleryID string) error {
	_, err := c.galleryMedia(ctx, MethodMoveMediaToTopInUserGallery, contentID, galleryID)
	return err
}

func (c *Client) galleryMedia(ctx context.Context, method string, contentID int64, galleryID string) (*Response, error) {
	return c.userCall(ctx, method, P("content_id", contentID, "id", galleryID), "gallery operation "+method+" failed")
}

func (c *Client) userCall(ctx context.Context, method string, params Params, msg string) (*Response, error) {
	resp, err := c.Call(ctx, method, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return resp, nil
}
