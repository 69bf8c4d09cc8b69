/*
Package domain contains the core domain models of the ordering bot.

It defines the cart, the per-conversation dialog state that carries the
suspended waterfall between turns, and the turn/message envelopes exchanged
with transports. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Cart: The order being assembled (selected items + running total).
  - State: The persisted continuation of a session (active flow, step, cart).
  - Turn: One inbound activity from a transport.
  - Message: One outbound reply, optionally carrying prompt choices.
  - TurnResult: What resuming the flow produced (empty, waiting, complete).
*/
package domain
