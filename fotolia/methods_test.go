package fotolia

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		method    string
		namespace string
		verb      string
	}{
		{MethodGetSearchResults, "search", http.MethodGet},
		{MethodGetSeasonalGalleries, "search", http.MethodGet},
		{MethodGetMediaComp, "media", http.MethodGet},
		{MethodLoginUser, "user", http.MethodPost},
		{MethodRefreshToken, "user", http.MethodPost},
		{MethodGetUserGalleryMedias, "user", http.MethodGet},
		{MethodMoveMediaToTopInUserGallery, "user", http.MethodPost},
		{MethodTest, "main", http.MethodGet},
		{MethodSubaccountCreate, "", http.MethodPost},
		{MethodSubaccountGetIDs, "", http.MethodGet},
		{MethodShoppingcartGetList, "", http.MethodGet},
		{MethodShoppingcartClear, "", http.MethodPost},
		{MethodShoppingcartTransferToLightbox, "", http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			meta, err := Resolve(tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.namespace, meta.Namespace)
			assert.Equal(t, tt.verb, meta.Verb)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	for _, m := range Methods() {
		first, err := Resolve(m)
		require.NoError(t, err)
		second, err := Resolve(m)
		require.NoError(t, err)
		assert.Equal(t, first, second, m)
	}
	assert.Len(t, Methods(), len(methodTable))
}

func TestResolveUnknownMethod(t *testing.T) {
	_, err := Resolve("renameUserGallery")
	require.Error(t, err)

	var unknown *UnknownMethodError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "renameUserGallery", unknown.Method)
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.Equal(t, KindUnknownMethod, KindOf(err))
}

func TestMutatingMethodsArePost(t *testing.T) {
	posts := map[string]bool{
		MethodLoginUser:                      true,
		MethodCreateUser:                     true,
		MethodRefreshToken:                   true,
		MethodDeleteUserGallery:              true,
		MethodCreateUserGallery:              true,
		MethodAddToUserGallery:               true,
		MethodRemoveFromUserGallery:          true,
		MethodMoveUpMediaInUserGallery:       true,
		MethodMoveDownMediaInUserGallery:     true,
		MethodMoveMediaToTopInUserGallery:    true,
		MethodSubaccountCreate:               true,
		MethodSubaccountEdit:                 true,
		MethodSubaccountDelete:               true,
		MethodShoppingcartAdd:                true,
		MethodShoppingcartUpdate:             true,
		MethodShoppingcartRemove:             true,
		MethodShoppingcartClear:              true,
		MethodShoppingcartTransferToLightbox: true,
	}

	for _, m := range Methods() {
		meta, err := Resolve(m)
		require.NoError(t, err)
		assert.Equal(t, posts[m], meta.IsPost(), m)
	}
}

func TestDispatchUnknownMethodMakesNoRequest(t *testing.T) {
	srv := newAPIServer(t, okHandler)
	seq := NewSequence(1)
	c := newTestClient(t, srv, WithSequence(seq))

	_, err := c.Dispatch(context.Background(), "getEverything", nil, true)
	require.Error(t, err)
	assert.Equal(t, KindUnknownMethod, KindOf(err))
	assert.Empty(t, srv.Requests())
	assert.Equal(t, int64(1), seq.Peek())
}

// Every wrapper must dispatch a registered method; a miss would surface as
// an UnknownMethodError from the calls below.
func TestWrappersUseRegisteredMethods(t *testing.T) {
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"session_token": "tok", "url": "x"})
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	calls := []func() error{
		func() error { _, err := c.GetSearchResults(ctx, P("words", "cat"), nil); return err },
		func() error { _, err := c.GetCategories1(ctx, LanguageEnUS, 0); return err },
		func() error { _, err := c.GetCategories2(ctx, LanguageEnUS, 0); return err },
		func() error { _, err := c.GetTags(ctx, LanguageEnUS, TagsUsed); return err },
		func() error { _, err := c.GetGalleries(ctx, LanguageEnUS); return err },
		func() error { _, err := c.GetSeasonalGalleries(ctx, LanguageEnUS, 110, 0); return err },
		func() error { _, err := c.GetCountries(ctx, LanguageEnUS); return err },
		func() error { _, err := c.GetData(ctx); return err },
		func() error { return c.TestConnection(ctx) },
		func() error { _, err := c.GetMediaData(ctx, 1, 110, LanguageEnUS); return err },
		func() error { _, err := c.GetBulkMediaData(ctx, []int64{1, 2}, 110, LanguageEnUS); return err },
		func() error { _, err := c.GetMediaGalleries(ctx, 1, LanguageEnUS, 110); return err },
		func() error { _, err := c.GetMedia(ctx, 1, "L", 0); return err },
		func() error { _, err := c.GetMediaComp(ctx, 1); return err },
		func() error { return c.LoginUser(ctx, "me", "secret") },
		func() error {
			_, err := c.CreateUser(ctx, P("login", "a", "password", "b", "email", "c", "language_id", 2))
			return err
		},
		func() error { _, err := c.GetUserData(ctx); return err },
		func() error { _, err := c.GetSalesData(ctx, SalesQuery{}); return err },
		func() error {
			_, err := c.GetUserAdvancedStats(ctx, StatsQuery{Type: "sales", TimeRange: "day"})
			return err
		},
		func() error { _, err := c.GetUserStats(ctx); return err },
		func() error { _, err := c.GetUserGalleries(ctx); return err },
		func() error { _, err := c.GetUserGalleryMedias(ctx, GalleryPage{}); return err },
		func() error { _, err := c.CreateUserGallery(ctx, "new"); return err },
		func() error { return c.DeleteUserGallery(ctx, "g1") },
		func() error { _, err := c.AddToUserGallery(ctx, 1, ""); return err },
		func() error { _, err := c.RemoveFromUserGallery(ctx, 1, ""); return err },
		func() error { return c.MoveUpMediaInUserGallery(ctx, 1, "") },
		func() error { return c.MoveDownMediaInUserGallery(ctx, 1, "") },
		func() error { return c.MoveMediaToTopInUserGallery(ctx, 1, "") },
		func() error { _, err := c.SubaccountCreate(ctx, P("email", "a@b.c")); return err },
		func() error { return c.SubaccountEdit(ctx, 1, P("email", "a@b.c")) },
		func() error { return c.SubaccountDelete(ctx, 1) },
		func() error { _, err := c.SubaccountGetIDs(ctx); return err },
		func() error { _, err := c.SubaccountGet(ctx, 1); return err },
		func() error { _, err := c.SubaccountGetPurchasedContents(ctx, 1, 1, 10); return err },
		func() error { _, err := c.ShoppingcartGetList(ctx); return err },
		func() error { _, err := c.ShoppingcartClear(ctx); return err },
		func() error { _, err := c.ShoppingcartTransferToLightbox(ctx, 1, 2); return err },
		func() error { _, err := c.ShoppingcartAdd(ctx, 1, "L"); return err },
		func() error { _, err := c.ShoppingcartUpdate(ctx, 1, "XL"); return err },
		func() error { _, err := c.ShoppingcartRemove(ctx, 1); return err },
	}

	for i, call := range calls {
		require.NoError(t, call(), "call %d", i)
	}

	seen := map[string]bool{}
	for _, r := range srv.Requests() {
		seen[r.Path] = true
	}
	for _, m := range Methods() {
		meta, _ := Resolve(m)
		if m == MethodRefreshToken {
			continue
		}
		assert.True(t, seen[strings.TrimPrefix(c.methodURL(m, meta), srv.URL)], "no call site dispatched %s", m)
	}
}
