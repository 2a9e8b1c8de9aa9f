package view

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

func TestSortURLTogglesDirection(t *testing.T) {
	p := querystate.Default()

	u, err := url.Parse(SortURL(p, ColTotal, ColTotal, "asc"))
	assert.NoError(t, err)
	assert.Equal(t, "desc", u.Query().Get("dir"))

	u, err = url.Parse(SortURL(p, ColTotal, ColTotal, "desc"))
	assert.NoError(t, err)
	assert.Equal(t, "asc", u.Query().Get("dir"))

	// Switching columns always starts ascending.
	u, err = url.Parse(SortURL(p, ColCity, ColTotal, "desc"))
	assert.NoError(t, err)
	assert.Equal(t, ColCity, u.Query().Get("sort"))
	assert.Equal(t, "asc", u.Query().Get("dir"))
}

func TestPageURLKeepsSearchAndSort(t *testing.T) {
	p := querystate.Default().WithSearch("austin")

	u, err := url.Parse(PageURL(p, 3, ColDate, "desc"))
	assert.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "austin", q.Get("search"))
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, ColDate, q.Get("sort"))
	assert.Equal(t, "desc", q.Get("dir"))
}

func TestRemoveChipURLTargetsRemoveEndpoint(t *testing.T) {
	draft := querystate.FiltersDraft{State: "CA", City: "Fresno"}
	p := querystate.Default().WithFilters(draft.Apply()).WithPage(4)

	u, err := url.Parse(RemoveChipURL(p, querystate.KeyState, ColDate, "desc"))
	assert.NoError(t, err)
	assert.Equal(t, "/orders/filters/remove/"+querystate.KeyState, u.Path)
	q := u.Query()
	assert.Equal(t, "CA", q.Get(querystate.KeyState))
	assert.Equal(t, "Fresno", q.Get(querystate.KeyCity))
	assert.Equal(t, ColDate, q.Get("sort"))
	assert.Equal(t, "desc", q.Get("dir"))
}

func TestPageWindow(t *testing.T) {
	assert.Equal(t, []int{1}, PageWindow(1, 1))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 12))
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageWindow(6, 12))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageWindow(12, 12))
	assert.Equal(t, []int{1, 2, 3}, PageWindow(2, 3))
}
