// Package integrations provides the HTTP plumbing for package registry clients.
//
// # Overview
//
// [Client] wraps an [http.Client] with default headers, JSON decoding and
// status mapping. Registry-specific clients embed it:
//
//   - [npm]: the npm registry, used to describe dependencies
//
// # Errors
//
// [Client.Get] failures map onto three sentinels, checked with errors.Is:
//
//   - [ErrNotFound]: the registry answered 404
//   - [ErrNetwork]: transport failure, timeout, or any other non-200 status
//   - [ErrDecode]: the body was not the expected JSON
//
// [Client.GetJSON] skips the status mapping and decodes whatever JSON the
// registry sent, so only [ErrNetwork] and [ErrDecode] remain.
//
// Requests are made once. There is no retry and no response cache; each
// lookup reflects the registry at the moment it was issued.
//
// [npm]: github.com/matzehuels/knowdeps/pkg/integrations/npm
package integrations
