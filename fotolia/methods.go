package fotolia

import (
	"net/http"
	"sort"
)

// Namespaces used in REST paths.
const (
	NamespaceSearch = "search"
	NamespaceMedia  = "media"
	NamespaceUser   = "user"
	NamespaceMain   = "main"
	NamespaceNone   = ""
)

// Method identifiers understood by the service.
const (
	MethodGetSearchResults     = "getSearchResults"
	MethodGetCategories1       = "getCategories1"
	MethodGetCategories2       = "getCategories2"
	MethodGetTags              = "getTags"
	MethodGetGalleries         = "getGalleries"
	MethodGetSeasonalGalleries = "getSeasonalGalleries"
	MethodGetCountries         = "getCountries"

	MethodGetMediaData      = "getMediaData"
	MethodGetBulkMediaData  = "getBulkMediaData"
	MethodGetMediaGalleries = "getMediaGalleries"
	MethodGetMedia          = "getMedia"
	MethodGetMediaComp      = "getMediaComp"

	MethodLoginUser                   = "loginUser"
	MethodCreateUser                  = "createUser"
	MethodRefreshToken                = "refreshToken"
	MethodGetUserData                 = "getUserData"
	MethodGetSalesData                = "getSalesData"
	MethodGetUserGalleries            = "getUserGalleries"
	MethodGetUserGalleryMedias        = "getUserGalleryMedias"
	MethodDeleteUserGallery           = "deleteUserGallery"
	MethodCreateUserGallery           = "createUserGallery"
	MethodAddToUserGallery            = "addToUserGallery"
	MethodRemoveFromUserGallery       = "removeFromUserGallery"
	MethodMoveUpMediaInUserGallery    = "moveUpMediaInUserGallery"
	MethodMoveDownMediaInUserGallery  = "moveDownMediaInUserGallery"
	MethodMoveMediaToTopInUserGallery = "moveMediaToTopInUserGallery"
	MethodGetUserAdvancedStats        = "getUserAdvancedStats"
	MethodGetUserStats                = "getUserStats"

	MethodGetData = "getData"
	MethodTest    = "test"

	MethodSubaccountCreate               = "user/subaccount/create"
	MethodSubaccountEdit                 = "user/subaccount/edit"
	MethodSubaccountDelete               = "user/subaccount/delete"
	MethodSubaccountGetIDs               = "user/subaccount/getIds"
	MethodSubaccountGet                  = "user/subaccount/get"
	MethodSubaccountGetPurchasedContents = "user/subaccount/getPurchasedContents"
	MethodShoppingcartGetList            = "shoppingcart/getList"
	MethodShoppingcartAdd                = "shoppingcart/add"
	MethodShoppingcartUpdate             = "shoppingcart/update"
	MethodShoppingcartRemove             = "shoppingcart/remove"
	MethodShoppingcartClear              = "shoppingcart/clear"
	MethodShoppingcartTransferToLightbox = "shoppingcart/transferToLightbox"
)

// MethodMetadata is the route of a method: its namespace and HTTP verb.
type MethodMetadata struct {
	Namespace string
	Verb      string
}

// IsPost reports whether parameters travel in a form-encoded body.
func (m MethodMetadata) IsPost() bool {
	return m.Verb == http.MethodPost
}

func get(ns string) MethodMetadata  { return MethodMetadata{Namespace: ns, Verb: http.MethodGet} }
func post(ns string) MethodMetadata { return MethodMetadata{Namespace: ns, Verb: http.MethodPost} }

// methodTable is never mutated after init.
var methodTable = map[string]MethodMetadata{
	MethodGetSearchResults:     get(NamespaceSearch),
	MethodGetCategories1:       get(NamespaceSearch),
	MethodGetCategories2:       get(NamespaceSearch),
	MethodGetTags:              get(NamespaceSearch),
	MethodGetGalleries:         get(NamespaceSearch),
	MethodGetSeasonalGalleries: get(NamespaceSearch),
	MethodGetCountries:         get(NamespaceSearch),

	MethodGetMediaData:      get(NamespaceMedia),
	MethodGetBulkMediaData:  get(NamespaceMedia),
	MethodGetMediaGalleries: get(NamespaceMedia),
	MethodGetMedia:          get(NamespaceMedia),
	MethodGetMediaComp:      get(NamespaceMedia),

	MethodLoginUser:                   post(NamespaceUser),
	MethodCreateUser:                  post(NamespaceUser),
	MethodRefreshToken:                post(NamespaceUser),
	MethodGetUserData:                 get(NamespaceUser),
	MethodGetSalesData:                get(NamespaceUser),
	MethodGetUserGalleries:            get(NamespaceUser),
	MethodGetUserGalleryMedias:        get(NamespaceUser),
	MethodDeleteUserGallery:           post(NamespaceUser),
	MethodCreateUserGallery:           post(NamespaceUser),
	MethodAddToUserGallery:            post(NamespaceUser),
	MethodRemoveFromUserGallery:       post(NamespaceUser),
	MethodMoveUpMediaInUserGallery:    post(NamespaceUser),
	MethodMoveDownMediaInUserGallery:  post(NamespaceUser),
	MethodMoveMediaToTopInUserGallery: post(NamespaceUser),
	MethodGetUserAdvancedStats:        get(NamespaceUser),
	MethodGetUserStats:                get(NamespaceUser),

	MethodGetData: get(NamespaceMain),
	MethodTest:    get(NamespaceMain),

	MethodSubaccountCreate:               post(NamespaceNone),
	MethodSubaccountEdit:                 post(NamespaceNone),
	MethodSubaccountDelete:               post(NamespaceNone),
	MethodSubaccountGetIDs:               get(NamespaceNone),
	MethodSubaccountGet:                  get(NamespaceNone),
	MethodSubaccountGetPurchasedContents: get(NamespaceNone),
	MethodShoppingcartGetList:            get(NamespaceNone),
	MethodShoppingcartAdd:                post(NamespaceNone),
	MethodShoppingcartUpdate:             post(NamespaceNone),
	MethodShoppingcartRemove:             post(NamespaceNone),
	MethodShoppingcartClear:              post(NamespaceNone),
	MethodShoppingcartTransferToLightbox: post(NamespaceNone),
}

// Resolve returns the route of method.
func Resolve(method string) (MethodMetadata, error) {
	meta, ok := methodTable[method]
	if !ok {
		return MethodMetadata{}, &UnknownMethodError{Method: method}
	}
	return meta, nil
}

// Methods returns every registered method identifier, sorted.
func Methods() []string {
	out := make([]string, 0, len(methodTable))
	for m := range methodTable {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
