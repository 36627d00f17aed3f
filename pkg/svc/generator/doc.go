// Package generator orchestrates a full generate run: read both release
// snapshots, diff them, and synthesize and emit one upgrade plan per
// upgraded component.
//
// Components are processed independently. A component whose artifacts cannot
// be read or inspected fails on its own; its siblings still get plans and
// the run reports every failure at the end.
package generator
