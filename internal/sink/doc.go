// Package sink provides the consumers of rendered jobs: printing them for a
// dry run, submitting them through a scheduler command, forwarding them to a
// socket.io relay, or recording them in the ledger.
//
// Every sink satisfies sweep.Sink. Sinks that hold resources also implement
// io.Closer.
package sink
