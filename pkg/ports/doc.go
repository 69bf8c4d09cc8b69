/*
Package ports defines the driven ports (interfaces) for the ordering bot.

These interfaces decouple the dialog core from external implementations, allowing
the bot to work with various storage backends and messaging transports.

# Key Interfaces

  - StateStore: Responsible for persisting and loading session State.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - Sender: Delivers outbound messages to the conversation a turn came from.
  - TurnHandler: Consumes inbound turns (implemented by menubot.Bot).
*/
package ports
