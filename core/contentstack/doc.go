// Package contentstack is a thin client for the Contentstack asset management API.
//
// Only the calls needed to find and remove unused assets are covered: paginated
// asset and folder listings, folder child counts, asset references, and asset or
// folder deletion. Every request carries the api_key, authtoken and branch headers.
//
// Non-2xx responses are returned as *APIError. The client never retries; callers
// decide how a failed call maps onto their own outcome.
//
// # Usage
//
//	client, err := contentstack.NewClient(cfg.Contentstack, apiKey)
//	refs, err := client.AssetReferences(ctx, "blt123")
package contentstack
