// Package books talks to the remote document-viewer service: it
// resolves document locators, parses landing pages and drives the
// undocumented page-discovery API.
//
// The package handles four concerns:
//
//  1. Resolving a free-form address to a canonical document id
//  2. Extracting bibliographic metadata and the table of contents
//     from the landing page
//  3. Enumerating all pages via the batched discovery protocol
//  4. Listing period/issue links for whole-series downloads
//
// # Discovery protocol
//
// The service never reports a page count directly. The seed round
// (lpg=1, pg=1) returns an entry per page, and entries lacking an
// image source are the pages still to fetch. Each subsequent round
// requests one page but may resolve several neighbors, so the Engine
// keeps a completed set and consumes every resolved entry of a batch:
//
//	engine := books.NewEngine(logger)
//	engine.Seed(seedIssue)
//	err := engine.Run(ctx, fetchBatch, handlePage)
//
// # Landing page extraction
//
// ExtractMetadata and ExtractTOC operate on a goquery document of the
// landing page. Only a missing metadata container is fatal; absent
// optional fields stay empty.
package books
