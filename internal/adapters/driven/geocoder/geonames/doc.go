// Package geonames implements the Geocoder port against the GeoNames
// search web service (https://www.geonames.org/export/geonames-search.html).
//
// Requests are throttled with a token bucket and identical concurrent
// lookups share one HTTP round trip, since every call is billed against
// the configured account's quota.
package geonames
