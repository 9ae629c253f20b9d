// Package services defines the remote boundaries of the catalogue client and
// implements them over HTTP.
//
// # Catalog Interface
//
// [CatalogService] abstracts the book gateway so controllers and commands can
// be tested against doubles. [BookService] is the HTTP implementation; it also
// implements [UserService] for the account profile endpoints served by the
// same gateway.
//
// Gateway responses are sometimes wrapped as {"body": "<json-string>"}
// depending on which stage handled the request. decodeEnvelope unwraps that
// shape at this boundary so nothing above it ever sees an envelope.
//
// # Identity Interface
//
// [IdentityService] abstracts the identity provider. [OAuthIdentityService]
// implements it with the OAuth2 resource owner password grant, then uses the
// bearer token for the userinfo and revocation endpoints.
//
// # Error Handling
//
// Services classify failures with sentinels from the shared package:
//   - [shared.ErrFetch] : a read from the gateway failed
//   - [shared.ErrMutation] : a create, update, or delete failed
//   - [shared.ErrUpload] : an image upload failed
//   - [shared.ErrAuthFailed] : the credential exchange was rejected
//   - [shared.ErrNotAuthenticated] : no token, or the provider rejected it
//   - [shared.ErrRegistration] : the provider refused a sign up
//
// Error responses carry the server's {"message": ...} through to the wrapped
// error so surfaces can show it verbatim.
package services
