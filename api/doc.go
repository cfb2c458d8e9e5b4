// Package api exposes the TradeFlow toolchain over HTTP: parsing,
// validation, graph generation, graph-to-DSL conversion, and simulated
// execution. The graph JSON emitted by the parse endpoint is the wire
// contract consumed by the React Flow frontend.
package api
