package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkout/entity"
)

func TestContactInformation_Validate(t *testing.T) {
	valid := entity.ContactInformation{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*entity.ContactInformation)
	}{
		{"missing first name", func(c *entity.ContactInformation) { c.FirstName = " " }},
		{"missing last name", func(c *entity.ContactInformation) { c.LastName = "" }},
		{"email without at", func(c *entity.ContactInformation) { c.Email = "asha.example.com" }},
		{"email without domain", func(c *entity.ContactInformation) { c.Email = "asha@" }},
		{"email without tld", func(c *entity.ContactInformation) { c.Email = "asha@example" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestContactInformation_phone_is_optional(t *testing.T) {
	c := entity.ContactInformation{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"}
	assert.NoError(t, c.Validate())

	c.Phone = "+91 98765 43210"
	assert.NoError(t, c.Validate())
}

func TestBookingRequest_Validate(t *testing.T) {
	valid := entity.BookingRequest{
		Selections:     []entity.SelectionItem{{TicketTypeID: "general", Quantity: 2}},
		Contact:        entity.ContactInformation{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"},
		PaymentMethod:  entity.PaymentMethodUpi,
		IdempotencyKey: "key-1",
	}
	assert.NoError(t, valid.Validate())

	empty := valid
	empty.Selections = nil
	assert.ErrorIs(t, empty.Validate(), entity.ErrEmptySelection)

	zeroQty := valid
	zeroQty.Selections = []entity.SelectionItem{{TicketTypeID: "general", Quantity: 0}}
	assert.Error(t, zeroQty.Validate())

	noKey := valid
	noKey.IdempotencyKey = ""
	assert.Error(t, noKey.Validate())
}
