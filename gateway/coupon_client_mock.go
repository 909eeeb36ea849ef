package gateway

import (
	"context"
	"fmt"
	"sync"

	"checkout/entity"
)

type CouponMock struct {
	mock sync.Mutex

	// Coupons maps code -> discount percent. Unknown codes are invalid.
	Coupons map[string]int

	ValidatedCodes []string
}

func (c *CouponMock) ValidateCoupon(ctx context.Context, eventID, code string) (entity.Coupon, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.ValidatedCodes = append(c.ValidatedCodes, code)

	percent, ok := c.Coupons[code]
	if !ok {
		return entity.Coupon{}, fmt.Errorf("coupon %q is not valid for this event", code)
	}
	return entity.Coupon{Code: code, DiscountPercent: percent}, nil
}
