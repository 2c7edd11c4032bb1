// Package youtube implements transcript acquisition and metadata lookup.
//
// Transcript acquisition has three independent strategies plus a composed one:
//
//	innertube.go + transcript.go — Innertube /player protocol with client
//	                               rotation and API key refresh (apikey.go)
//	markdown.go                  — Firecrawl markdown scrape + line heuristics
//	htmlparse.go                 — Firecrawl HTML scrape + segment block matching
//	auto.go                      — ordered fallback across the three
//
// Metadata lookup (dataapi.go, search_scrape.go) wraps the Data API v3 with
// a ytInitialData scraping fallback for search.
package youtube
