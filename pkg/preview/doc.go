// Package preview serves defined elements over HTTP for development.
//
// Routes:
//
//	GET /elements             defined elements as JSON
//	GET /elements/{tag}       render once; query parameters become attributes
//	GET /elements/{tag}/live  websocket session driving one connected element
//	GET /metrics              Prometheus metrics, when a gatherer is set
//
// A live session mounts the element when the socket opens and unmounts it
// when the socket closes. Clients send requests such as
//
//	{"op":"setProperty","name":"count","value":3}
//
// and receive the rendered element after each one:
//
//	{"type":"render","html":"<x-counter count=\"3\">...","attributes":{"count":"3"}}
package preview
