package api

import (
	"context"
	"fmt"

	"github.com/me/unishop/pkg/model"
)

// FetchProducts retrieves the product catalog. No authentication required.
func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	var resp struct {
		Success  bool            `json:"success"`
		Products []model.Product `json:"products"`
		Error    *model.APIError `json:"error"`
	}
	if err := c.do(ctx, "GET", "/api/products", "", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		if resp.Error != nil {
			return nil, fmt.Errorf("%w: %s", model.ErrRemoteOperationFailed, resp.Error.Message)
		}
		return nil, model.ErrRemoteOperationFailed
	}
	return resp.Products, nil
}
