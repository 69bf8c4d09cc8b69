/*
Package menubot is a conversational ordering bot built around a two-step
dialog waterfall.

The bot presents a fixed menu, collects selected items into a running cart
and ends the order on explicit "checkout" or "cancel" commands. Each user
message is an independent turn: the dialog suspends after prompting, and the
next turn resumes it from persisted session state.

# Architecture

The core is transport- and storage-agnostic (Hexagonal Architecture):

  - Bot (this package) dispatches turns and owns the session lifecycle.
  - internal/flow runs the ordering waterfall.
  - pkg/menu holds the immutable, localizable menu.
  - pkg/ports defines StateStore, DistributedLocker and Sender.
  - pkg/adapters provides stores (memory, file, redis, postgres) and
    transports (http, discord, mcp).
  - pkg/runner drives the bot from a terminal or NDJSON stream.

# Usage

	bot := menubot.New(
		menubot.WithMenu(menu.English()),
		menubot.WithStore(memory.NewStore()),
	)

	sender := ports.SenderFunc(func(ctx context.Context, id string, msg domain.Message) error {
		fmt.Println(msg.Text)
		return nil
	})

	turn := domain.Turn{Kind: domain.ActivityMessage, SessionID: "alice", Text: "hi"}
	if err := bot.HandleTurn(ctx, turn, sender); err != nil {
		log.Fatal(err)
	}
*/
package menubot
