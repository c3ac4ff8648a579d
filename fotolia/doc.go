// Package fotolia provides a client for the Fotolia REST API.
//
// Every API method goes through Client.Dispatch, which routes the method to
// its namespace and HTTP verb, attaches Basic credentials made of the API key
// and the session token, performs the exchange and classifies the response.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := fotolia.NewClient("your-api-key", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.LoginUser(ctx, "login", "password"); err != nil {
//		log.Fatal(err)
//	}
//
//	media, err := client.GetMedia(ctx, 12345, "L", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = client.DownloadMedia(ctx, media.String("url"), "12345.jpg")
//
// Methods without a typed wrapper can be called directly:
//
//	resp, err := client.Call(ctx, fotolia.MethodGetTags, fotolia.P(
//		"language_id", fotolia.LanguageEnUS,
//		"type", "New",
//	))
//
// # Sessions
//
// LoginUser stores the session token in memory only. A token older than
// TokenTimeout is refreshed through refreshToken before the next call that
// allows it. LogoutUser drops the token.
//
// # Error Handling
//
// Errors returned by Dispatch and Download implement Error and are one of
// UnknownMethodError, AuthRequiredError, TransportError, APIError,
// HTTPStatusError or IOError:
//
//	var apiErr *fotolia.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("code %d: %s", apiErr.Code, apiErr.Message)
//	}
//
// # Diagnostics
//
// Each dispatch that reaches the network is numbered from a Sequence, shared
// process-wide unless WithSequence is given, and reported to the configured
// Recorders. HeaderRecorder turns these reports into X-Fotolia-API-Call-*
// response headers.
package fotolia
