// Package executor implements the tree-walking interpreter for TradeFlow
// programs. All command effects are simulated in memory; no command ever
// performs real network, file, or email I/O, and no command ever fails.
package executor
