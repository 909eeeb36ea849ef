package gateway

import (
	"context"
	"fmt"
	"net/http"

	"checkout/entity"
)

type CouponClient struct {
	client *Client
}

func NewCouponClient(client *Client) CouponClient {
	return CouponClient{client: client}
}

type couponValidationResponse struct {
	Valid           bool `json:"valid"`
	DiscountPercent int  `json:"discount_percent"`
}

// ValidateCoupon checks the code against the coupon service. An accepted
// coupon with a zero discount is still a valid coupon.
func (c CouponClient) ValidateCoupon(ctx context.Context, eventID, code string) (entity.Coupon, error) {
	var response couponValidationResponse
	err := c.client.doJSON(ctx, http.MethodPost, "/events/"+eventID+"/coupons/validate", map[string]string{
		"code": code,
	}, &response, nil)
	if err != nil {
		return entity.Coupon{}, fmt.Errorf("could not validate coupon: %w", err)
	}

	if !response.Valid {
		return entity.Coupon{}, fmt.Errorf("coupon %q is not valid for this event", code)
	}

	return entity.Coupon{Code: code, DiscountPercent: response.DiscountPercent}, nil
}
