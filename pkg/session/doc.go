/*
Package session serializes access to conversation state.

Turns for the same session are processed one at a time: a ref-counted
in-process mutex guards each session, and an optional DistributedLocker
extends that guarantee across bot replicas. Update wraps the per-turn
read-modify-write cycle so a failed turn never persists partial state.
*/
package session
