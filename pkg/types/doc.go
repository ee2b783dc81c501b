// Package types defines the dictionary entities, the store interfaces that
// collaborators program against, the interchange record shapes, and the
// standard errors for the StoryKeeper dictionary store.
package types
