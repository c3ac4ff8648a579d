package fotolia

import (
	"context"
	"fmt"
)

// SubaccountCreate creates a subaccount of the API key owner and returns its
// id.
func (c *Client) SubaccountCreate(ctx context.Context, data Params) (*Response, error) {
	return c.commerceCall(ctx, MethodSubaccountCreate, P("subaccount_data", data))
}

// SubaccountEdit updates a subaccount.
func (c *Client) SubaccountEdit(ctx context.Context, subaccountID int64, data Params) error {
	_, err := c.commerceCall(ctx, MethodSubaccountEdit, P(
		"subaccount_id", subaccountID,
		"subaccount_data", data,
	))
	return err
}

// SubaccountDelete deletes a subaccount.
func (c *Client) SubaccountDelete(ctx context.Context, subaccountID int64) error {
	_, err := c.commerceCall(ctx, MethodSubaccountDelete, P("subaccount_id", subaccountID))
	return err
}

// SubaccountGetIDs returns the ids of all subaccounts.
func (c *Client) SubaccountGetIDs(ctx context.Context) (*Response, error) {
	return c.commerceCall(ctx, MethodSubaccountGetIDs, nil)
}

// SubaccountGet returns a subaccount.
func (c *Client) SubaccountGet(ctx context.Context, subaccountID int64) (*Response, error) {
	return c.commerceCall(ctx, MethodSubaccountGet, P("subaccount_id", subaccountID))
}

// SubaccountGetPurchasedContents pages through the purchases of a
// subaccount. Pages start at 1.
func (c *Client) SubaccountGetPurchasedContents(ctx context.Context, subaccountID int64, page, perPage int) (*Response, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return c.commerceCall(ctx, MethodSubaccountGetPurchasedContents, P(
		"subaccount_id", subaccountID,
		"page", page,
		"nb_per_page", perPage,
	))
}

// ShoppingcartGetList returns the content of the shopping cart.
func (c *Client) ShoppingcartGetList(ctx context.Context) (*Response, error) {
	return c.commerceCall(ctx, MethodShoppingcartGetList, nil)
}

// ShoppingcartClear empties the shopping cart.
func (c *Client) ShoppingcartClear(ctx context.Context) (*Response, error) {
	return c.commerceCall(ctx, MethodShoppingcartClear, nil)
}

// ShoppingcartTransferToLightbox moves one or more cart items to the
// lightbox.
func (c *Client) ShoppingcartTransferToLightbox(ctx context.Context, ids ...int64) (*Response, error) {
	var id any = ids
	if len(ids) == 1 {
		id = ids[0]
	}
	return c.commerceCall(ctx, MethodShoppingcartTransferToLightbox, P("id", id))
}

// ShoppingcartAdd adds a media to the cart under licenseName.
func (c *Client) ShoppingcartAdd(ctx context.Context, id int64, licenseName string) (*Response, error) {
	return c.commerceCall(ctx, MethodShoppingcartAdd, P("id", id, "license_name", licenseName))
}

// ShoppingcartUpdate changes the license of a cart item. An empty
// licenseName leaves it unchanged.
func (c *Client) ShoppingcartUpdate(ctx context.Context, id int64, licenseName string) (*Response, error) {
	return c.commerceCall(ctx, MethodShoppingcartUpdate, P("id", id, "license_name", optional(licenseName)))
}

// ShoppingcartRemove removes a media from the cart.
func (c *Client) ShoppingcartRemove(ctx context.Context, id int64) (*Response, error) {
	return c.commerceCall(ctx, MethodShoppingcartRemove, P("id", id))
}

func (c *Client) commerceCall(ctx context.Context, method string, params Params) (*Response, error) {
	resp, err := c.Call(ctx, method, params)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	return resp, nil
}
