package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/kbcli/internal/common"
)

// Ask sends a question to the assistant and prints the answer. The
// transcript keeps both entries even when the backend fails, so a failed
// ask still shows the fallback answer.
func (a *App) Ask(ctx context.Context) error {
	question, err := getSimpleText(a.reader, "Question", os.Stdout)
	if err != nil {
		return err
	}

	answer, askErr := a.qa.Ask(ctx, question)
	if errors.Is(askErr, common.ErrAskInFlight) {
		printError(askErr)
		return askErr
	}
	if askErr != nil {
		printError(askErr)
	}
	printMessage(&answer)
	return askErr
}

// History prints the whole question and answer transcript in order.
func (a *App) History(ctx context.Context) error {
	history := a.qa.History()
	if len(history) == 0 {
		printlnFn("No questions asked yet.")
		return nil
	}
	for i := range history {
		printMessage(&history[i])
	}
	return nil
}

// ClearHistory wipes the transcript, both in memory and on disk.
func (a *App) ClearHistory(ctx context.Context) error {
	if err := a.qa.ClearHistory(ctx); err != nil {
		printError(err)
		return err
	}
	printlnFn("History cleared.")
	return nil
}
