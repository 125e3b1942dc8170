// Package shadow mirrors the reactive part of the host render surface.
//
// A Tree holds one Node per host node that carries a light binding, a push
// binding, a listener, a disposer or a visibility rule. Nodes are linked in
// the same order as their hosts so that a pre-order walk visits parents
// before children, and each node tracks two flags:
//
//   - visible: the node's own rule (true when it has none) and every
//     ancestor's rule hold. An invisible node forces its whole subtree
//     invisible.
//   - connected: the node is visible and linked under the tree root, which
//     stands for the realized surface. Connected implies visible.
//
// Listeners receive OnConnected and OnDisconnected as these flags change.
// Propagation runs parent first when connecting and children first when
// disconnecting, so children release their resources before their parent.
//
// The Synchronizer keeps the links in step with the surface by consuming
// the dom.Document mutation feed.
package shadow
