package draftcookie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := New([]byte("secret"), "orders_draft", false)
	d := querystate.FiltersDraft{
		FromDate:    "2024-01-01",
		MinSubtotal: "10.5",
		City:        "Austin",
	}

	v, err := c.Encode(d)
	require.NoError(t, err)

	back, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestDecodeRejectsTamperedPayload(t *testing.T) {
	c := New([]byte("secret"), "orders_draft", false)
	v, err := c.Encode(querystate.FiltersDraft{State: "CA"})
	require.NoError(t, err)

	_, err = c.Decode("x" + v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	a := New([]byte("secret-a"), "orders_draft", false)
	b := New([]byte("secret-b"), "orders_draft", false)

	v, err := a.Encode(querystate.FiltersDraft{State: "CA"})
	require.NoError(t, err)

	_, err = b.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := New([]byte("secret"), "orders_draft", false)
	_, err := c.Decode("not-a-cookie")
	assert.ErrorIs(t, err, ErrInvalid)
}
