package api

import (
	"context"
	"fmt"

	"github.com/me/unishop/pkg/model"
)

// FetchCart retrieves the authoritative cart for the session.
func (c *Client) FetchCart(ctx context.Context, token string) ([]model.CartItem, error) {
	var resp model.CartResponse
	if err := c.do(ctx, "GET", "/api/cart", token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, cartError(resp.Error)
	}
	return resp.CartItems, nil
}

// AddItem adds quantity units of a product to the remote cart.
func (c *Client) AddItem(ctx context.Context, token, productID string, quantity int) error {
	var resp model.CartResponse
	body := model.CartMutationRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, "POST", "/api/cart/add", token, body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return cartError(resp.Error)
	}
	return nil
}

// RemoveItem deletes a product from the remote cart.
func (c *Client) RemoveItem(ctx context.Context, token, productID string) error {
	var resp model.CartResponse
	if err := c.do(ctx, "DELETE", "/api/cart/remove/"+productID, token, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return cartError(resp.Error)
	}
	return nil
}

// UpdateQuantity sets the quantity of a product in the remote cart.
func (c *Client) UpdateQuantity(ctx context.Context, token, productID string, quantity int) error {
	var resp model.CartResponse
	body := model.CartMutationRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, "PUT", "/api/cart/update", token, body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return cartError(resp.Error)
	}
	return nil
}

// ClearCart empties the remote cart.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	var resp model.CartResponse
	if err := c.do(ctx, "DELETE", "/api/cart/clear", token, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return cartError(resp.Error)
	}
	return nil
}

func cartError(apiErr *model.APIError) error {
	if apiErr != nil {
		return fmt.Errorf("%w: %s", model.ErrRemoteOperationFailed, apiErr.Message)
	}
	return model.ErrRemoteOperationFailed
}
