package fotolia

import (
	"context"
	"fmt"
	"strconv"
)

// GetSearchResults searches the image bank. searchParams go out as
// search_parameters[...]; resultColumns, when given, restricts the columns of
// each row.
func (c *Client) GetSearchResults(ctx context.Context, searchParams Params, resultColumns []string) (*Response, error) {
	var columns any
	if len(resultColumns) > 0 {
		columns = resultColumns
	}
	resp, err := c.Call(ctx, MethodGetSearchResults, P(
		"search_parameters", searchParams,
		"result_columns", columns,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return resp, nil
}

// GetCategories1 returns the children of a representative category; id 0
// is the root.
func (c *Client) GetCategories1(ctx context.Context, lang LanguageID, id int) (*Response, error) {
	return c.categories(ctx, MethodGetCategories1, lang, id)
}

// GetCategories2 returns the children of a conceptual category; id 0 is the
// root.
func (c *Client) GetCategories2(ctx context.Context, lang LanguageID, id int) (*Response, error) {
	return c.categories(ctx, MethodGetCategories2, lang, id)
}

func (c *Client) categories(ctx context.Context, method string, lang LanguageID, id int) (*Response, error) {
	resp, err := c.Call(ctx, method, P("language_id", lang, "id", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return resp, nil
}

// GetTags returns the most used or the newest tags.
func (c *Client) GetTags(ctx context.Context, lang LanguageID, tagType TagType) (*Response, error) {
	if tagType == "" {
		tagType = TagsUsed
	}
	resp, err := c.Call(ctx, MethodGetTags, P("language_id", lang, "type", tagType))
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return resp, nil
}

// GetGalleries returns the public galleries of a language.
func (c *Client) GetGalleries(ctx context.Context, lang LanguageID) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetGalleries, P("language_id", lang))
	if err != nil {
		return nil, fmt.Errorf("failed to get galleries: %w", err)
	}
	return resp, nil
}

// GetSeasonalGalleries returns the public seasonal galleries; themeID 0 means
// all themes.
func (c *Client) GetSeasonalGalleries(ctx context.Context, lang LanguageID, thumbnailSize, themeID int) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetSeasonalGalleries, P(
		"language_id", lang,
		"thumbnail_size", thumbnailSize,
		"theme_id", optional(themeID),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get seasonal galleries: %w", err)
	}
	return resp, nil
}

// GetCountries returns the list of countries.
func (c *Client) GetCountries(ctx context.Context, lang LanguageID) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetCountries, P("language_id", lang))
	if err != nil {
		return nil, fmt.Errorf("failed to get countries: %w", err)
	}
	return resp, nil
}

// GetData returns general service data.
func (c *Client) GetData(ctx context.Context) (*Response, error) {
	resp, err := c.Call(ctx, MethodGetData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get data: %w", err)
	}
	return resp, nil
}

// SearchRows returns the result rows of a getSearchResults payload in order.
// Rows are keyed "0", "1", ... next to the nb_results count.
func (r *Response) SearchRows() []map[string]any {
	obj := r.Object()
	rows := make([]map[string]any, 0, len(obj))
	for i := 0; ; i++ {
		row, ok := obj[strconv.Itoa(i)].(map[string]any)
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return rows
}
