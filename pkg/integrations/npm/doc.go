// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package metadata from the npm registry
// (https://registry.npmjs.org):
//
//	client := npm.NewClient(npm.WithTimeout(5 * time.Second))
//
//	desc, err := client.Describe(ctx, "left-pad")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(desc) // "String left pad"
//
// [Client.Describe] reads only the top-level "description" field and is what
// the dependencies panel calls once per entry. [Client.FetchPackage] returns
// the richer [PackageInfo] of the latest version.
//
// # Names
//
// Names are validated before any request so manifest keys cannot steer the
// request path. Scoped packages are requested as "@scope%2Fname".
//
// # Caching
//
// There is none. Every call is one GET against the registry.
package npm
