// Package youtube recognises YouTube video links and extracts their canonical
// identity.
//
// Four URL shapes are accepted, each over http or https:
//
//	[www.]youtube.com/watch?v=<ID>
//	youtu.be/<ID>
//	[www.]youtube.com/embed/<ID>
//	[www.]youtube.com/v/<ID>
//
// where <ID> is an 11 character video identifier drawn from [A-Za-z0-9_-].
// Matching is anchored at the start of the (trimmed) input only, so trailing
// query parameters or path segments are accepted. All functions are pure and
// never touch the network.
package youtube
