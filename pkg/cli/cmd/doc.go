// Package cmd defines the appupgen command tree: the root command and the
// generate command that produces upgrade plan descriptors for a release.
package cmd
