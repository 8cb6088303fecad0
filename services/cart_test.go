package services

import (
	"testing"

	"github.com/Govind-619/BookMall/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCartAndSummary(t *testing.T) {
	f := newFixture(t)

	cart, err := GetCart(f.db, f.customer.Account)
	require.NoError(t, err)
	require.Len(t, cart.Items, 3)
	assert.Equal(t, "Go in Action", cart.Items[0].Listing.Book.Title)

	groups := CartSummary(cart)
	require.Len(t, groups, 2)
	assert.Equal(t, f.storeA.ID, groups[0].Bookstore.ID)
	assert.Equal(t, int64(1510), groups[0].Subtotal)
	assert.Equal(t, int64(1570), groups[0].Total)
	assert.Equal(t, f.storeB.ID, groups[1].Bookstore.ID)
	assert.Equal(t, int64(340), groups[1].Total)

	count, err := CartCount(f.db, f.customer.Account)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestGetCartWithoutCart(t *testing.T) {
	f := newFixture(t)

	cart, err := GetCart(f.db, "nobody")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Empty(t, CartSummary(cart))

	count, err := CartCount(f.db, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAddToCartMergesQuantity(t *testing.T) {
	f := newFixture(t)

	item, err := AddToCart(f.db, f.customer.Account, f.listingA1.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, int64(3), f.cartItemCount(t))

	_, err = AddToCart(f.db, f.customer.Account, f.listingA1.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = AddToCart(f.db, f.customer.Account, f.listingA1.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = AddToCart(f.db, f.customer.Account, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestAddToCartCreatesCart(t *testing.T) {
	f := newFixture(t)
	bob := models.Customer{Account: "bob", Name: "Bob", Password: "x", PhoneNumber: "0900000000"}
	require.NoError(t, f.db.Create(&bob).Error)

	_, err := AddToCart(f.db, bob.Account, f.listingB1.ID, 1)
	require.NoError(t, err)

	cart, err := GetCart(f.db, bob.Account)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.listingB1.ID, cart.Items[0].ListingID)
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	f := newFixture(t)
	cart, err := GetCart(f.db, f.customer.Account)
	require.NoError(t, err)
	first := cart.Items[0]

	item, err := UpdateCartItem(f.db, f.customer.Account, first.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	_, err = UpdateCartItem(f.db, f.customer.Account, first.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = UpdateCartItem(f.db, "someone-else", first.ID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	item, err = UpdateCartItem(f.db, f.customer.Account, first.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.Equal(t, int64(2), f.cartItemCount(t))

	require.NoError(t, RemoveCartItem(f.db, f.customer.Account, cart.Items[1].ID))
	assert.Equal(t, int64(1), f.cartItemCount(t))
	assert.ErrorIs(t, RemoveCartItem(f.db, f.customer.Account, cart.Items[1].ID), ErrCartItemNotFound)
}
