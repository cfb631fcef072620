package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEventCreate() *EventCreateRequest {
	return &EventCreateRequest{
		Title:           "Birthday Party Deluxe",
		Description:     "Balloons, cake table and decorations for up to 30 guests",
		ActualPrice:     150000,
		DiscountedPrice: 129900,
		CategoryID:      1,
		ImageURL:        "https://cdn.example.com/packages/birthday.jpg",
	}
}

func TestEventCreateRequestValidate(t *testing.T) {
	assert.NoError(t, validEventCreate().Validate())
}

func TestEventCreateRequestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EventCreateRequest)
	}{
		{"empty title", func(r *EventCreateRequest) { r.Title = " " }},
		{"zero actual price", func(r *EventCreateRequest) { r.ActualPrice = 0 }},
		{"negative discounted price", func(r *EventCreateRequest) { r.DiscountedPrice = -1 }},
		{"discounted above actual", func(r *EventCreateRequest) { r.DiscountedPrice = r.ActualPrice + 1 }},
		{"missing category", func(r *EventCreateRequest) { r.CategoryID = 0 }},
		{"bad image url", func(r *EventCreateRequest) { r.ImageURL = "::not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validEventCreate()
			tt.mutate(req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestEventEffectivePrice(t *testing.T) {
	event := &Event{ActualPrice: 150000, DiscountedPrice: 129900}
	assert.Equal(t, 129900, event.EffectivePrice())
	assert.InDelta(t, 1299.0, event.PriceInCurrency(), 0.001)
}

func TestEventDiscountPercent(t *testing.T) {
	tests := []struct {
		name       string
		actual     int
		discounted int
		want       int
	}{
		{"no discount", 10000, 10000, 0},
		{"half off", 10000, 5000, 50},
		{"rounds", 30000, 20000, 33},
		{"zero actual", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &Event{ActualPrice: tt.actual, DiscountedPrice: tt.discounted}
			assert.Equal(t, tt.want, event.DiscountPercent())
		})
	}
}
