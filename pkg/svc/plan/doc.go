// Package plan synthesizes per-component upgrade instructions from artifact
// change sets and emits them as canonical appup descriptor files.
//
// Instructions form a closed sum type with one variant per instruction kind,
// so the decision procedure choosing between them is exhaustive by
// construction.
package plan
