// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package classify

import "context"

type siteKey struct{}

// WithSite returns a context that carries site as the caller's partition.
func WithSite(ctx context.Context, site string) context.Context {
	return context.WithValue(ctx, siteKey{}, site)
}

// SiteFromContext is the default ScopeFunc. It returns the site placed in
// ctx by WithSite, or "" when there is none. The store files site-less
// texts under dedup.LocalScope.
func SiteFromContext(ctx context.Context) string {
	site, _ := ctx.Value(siteKey{}).(string)
	return site
}

// StaticSite returns a ScopeFunc that always resolves to site.
func StaticSite(site string) ScopeFunc {
	return func(context.Context) string { return site }
}
