// Package feed provides pose sources that publish into a pose.Slot without a camera:
// a keyboard-driven puppet and a recorded JSON-lines replay
package feed
