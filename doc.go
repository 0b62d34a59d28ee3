// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements an incremental, event-driven JSON parser.
//
// # Walking
//
// A Walker consumes JSON text in chunks of any size, as they become
// available, and reports the structure of the text to a Handler without
// holding the whole document in memory. Construct a walker with New, push
// text to it, and call End when the input is complete:
//
//	w := jstream.New(handler, nil)
//	for chunk := range chunks {
//	   w.Push(chunk)
//	}
//	w.End()
//
// Push does not block waiting for input. It runs the walker until the text
// pushed so far has been consumed, reporting each token as it completes, and
// returns. A token split across chunks is completed by a later Push, or by
// End.
//
// To walk the contents of an io.Reader, use Walk:
//
//	if err := jstream.Walk(ctx, r, handler, nil); err != nil {
//	   log.Fatalf("Reading input: %v", err)
//	}
//
// A *Walker is also an io.WriteCloser, so it can be the destination of
// io.Copy.
//
// # Events
//
// The methods of a Handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                 | Description
//	---------- | ----------------------- | --------------------------------
//	object     | BeginObject, EndObject  | { ... }
//	member     | Property                | "key": (then one value)
//	array      | BeginArray, EndArray    | [ ... ]
//	value      | String, Number, Literal | "...", 1.5, true, false, null
//	--         | Error                   | a syntax error
//	--         | End                     | end of input
//
// Use HandlerFunc or Recorder to receive events as Event values.
//
// # Errors
//
// The walker does not stop at a syntax error. It reports a *SyntaxError to
// the handler's Error method and carries on, so a single walk may report
// several errors. Each open array or object that is not closed by the end of
// the input yields one error, innermost first. Every walk ends with exactly
// one call to End, after all other events.
//
// # Related packages
//
// Package ast reduces the events of a walk to a syntax tree. Package eventify
// reports the events of an in-memory Go value, so that the same handlers can
// consume both.
package jstream
