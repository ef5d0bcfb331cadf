// Package services defines the [Service] interface for the Spotify Web API and implements it with the OAuth2 client-credentials grant.
//
// # Token Lifecycle
//
// [SpotifyService] owns the resolved client credentials and the current bearer token.
// Construction authenticates immediately; every data-fetching call first checks the
// token's expiry instant, re-authenticates at most once if it has passed, then issues
// the request. A token is expired strictly after its expiry instant — equal time is
// still fresh, and no grace margin is applied.
//
// Token state transitions:
//
//	Unauthenticated → Authenticated   on a successful Authenticate
//	Authenticated   → Authenticated   on refresh (new token value, same state)
//
// A failed Authenticate leaves the state exactly as it was before the call.
//
// # Response Schemas
//
// Responses decode into explicit typed schemas rather than untyped maps. Listing
// endpoints are lenient (absent collections project to empty results, scalars default
// to zero values); track projection is strict (a missing track object or empty artists
// array fails the call).
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : credentials absent from config and environment
//   - [shared.ErrAuthFailed] : token endpoint returned non-200
//   - [shared.ErrAPIRequest] : resource endpoint returned non-200 (see [RequestError])
//   - [shared.ErrMalformedResponse] : expected nested field absent during projection
//
// None of these are recovered internally; every failure propagates to the caller.
package services
