// Transaction support for the layered store.
//
// Each open transaction is one layer on top of the base layer.
// The implementation is split across:
//   - transaction_ops.go: Begin and depth inspection
//   - transaction_commit.go: Commit and rollback logic
package storage
