/*
Package neural implements the feed-forward substrate consumed by the
neural condition, action and prediction variants of package xcsf (spec
§4.11): an ordered sequence of Layers, each owning its own weights,
forward/backward passes, a mutation operator and a Resize hook so a
width-changing mutation on one layer can propagate to the next.

The doubly-linked list of the original C implementation is replaced by a
plain ordered slice (spec §9): resizing walks forward by index, reading
the previous layer's output width, with no back-pointers.
*/
package neural
