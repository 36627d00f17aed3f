// Package diff computes the component-level difference between two release
// snapshots and classifies each component as added, removed, or upgraded.
//
// It also provides the upgrade-candidate filter that drops newly added
// components and components that already carry a plan descriptor.
package diff
