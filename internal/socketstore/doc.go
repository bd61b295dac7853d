// Package socketstore is a persist.Store that forwards create, save and
// remove calls to a remote service over Socket.IO.
//
// Requests are emitted as "sheet:create", "sheet:save" and "sheet:remove"
// with a payload carrying a request id ("req") and, for save and remove, the
// record. The service answers every request with one "sheet:reply" event:
//
//	{"req": "<id>", "record": {...}}      // success
//	{"req": "<id>", "error": "message"}   // failure
//
// Replies are matched to waiting calls by request id.
package socketstore
