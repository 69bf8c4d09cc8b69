/*
Package runner drives a turn handler from a line-oriented stream.

Each input line becomes one message turn. Replies are written back through a
pluggable IOHandler, so the same loop serves an interactive terminal and a
headless NDJSON pipe.

# Key Components

  - Runner: The read-turn-reply loop.
  - IOHandler: Decouples how turns are read and replies are written.
  - TextHandler: Interactive terminal with numbered choices.
  - JSONHandler: One JSON object per line in both directions.

# Usage

	r := runner.New(bot,
		runner.WithSessionID("user-1"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
