package menubot_test

import (
	"context"
	"fmt"

	"github.com/aretw0/menubot"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/ports"
)

// Example shows a complete order over the default in-memory store.
func Example() {
	bot := menubot.New()
	ctx := context.Background()

	say := ports.SenderFunc(func(_ context.Context, _ string, msg domain.Message) error {
		fmt.Println(msg.Text)
		return nil
	})

	for _, text := range []string{"hi", "Clam Chowder", "process order"} {
		if err := bot.HandleTurn(ctx, domain.Turn{Kind: domain.ActivityMessage, Text: text, SessionID: "example"}, say); err != nil {
			panic(err)
		}
	}

	// Output:
	// Ready to take your order...
	// What would you like for dinner?
	// Added Clam Chowder to your cart.
	// Current total: $4.50
	// What would you like for dinner?
	// Your order has been processed.
	// Your total came to $4.50
}
