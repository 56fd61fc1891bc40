// Package transcode drives a whole run: it splits the input into
// documents, copies each one from its producer to the output consumer, and
// decides what reaches the destination when a run fails.
package transcode
