// Package tmdb provides a client for the TMDB catalog API: movie and TV
// details, the season sub-resource, and multi search. Requests authenticate
// with an api_key query parameter; no bearer token is involved.
package tmdb
