package cli

import (
	"context"
	"fmt"
	"os"
)

// Search prompts for a query and prints the matches. With semantic set,
// the backend ranks by relevance instead of keywords.
func (a *App) Search(ctx context.Context, semantic bool) error {
	query, err := getSimpleText(a.reader, "Search query", os.Stdout)
	if err != nil {
		return err
	}

	results, err := a.search.Search(ctx, query, semantic)
	if err != nil {
		printError(err)
		return err
	}
	if len(results) == 0 {
		printlnFn("No results.")
		return nil
	}
	for i := range results {
		printSearchResult(&results[i])
	}
	return nil
}

// Recent prints the recently used search queries, newest first.
func (a *App) Recent(ctx context.Context) error {
	queries := a.search.Recent()
	if len(queries) == 0 {
		printlnFn("No recent searches.")
		return nil
	}
	for i, q := range queries {
		printlnFn(fmt.Sprintf("%d. %s", i+1, q))
	}
	return nil
}
