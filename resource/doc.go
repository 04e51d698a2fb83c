// Package resource provides global budgets for memory, concurrent model
// loads, and IO throughput. A single Controller is shared by the block cache
// and the load paths so one process cannot oversubscribe itself when serving
// many models.
package resource
