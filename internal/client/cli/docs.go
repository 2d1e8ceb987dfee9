package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/kbcli/internal/client/drafts"
)

// List refetches the full document collection and prints it, one line per
// document, along with the distinct tag set.
func (a *App) List(ctx context.Context) error {
	if err := a.docs.Refresh(ctx); err != nil {
		printError(err)
		return err
	}

	docs := a.docs.All()
	for i := range docs {
		printDocumentLine(&docs[i])
	}
	if tags := a.docs.Tags(); len(tags) > 0 {
		fmt.Printf("tags in use: %s\n", strings.Join(tags, ", "))
	}
	printlnFn(fmt.Sprintf("%d document(s)", len(docs)))
	return nil
}

// Filter narrows the cached list by a text query and/or a tag selection;
// both are applied together. It works on the cache, so run list at least
// once first.
func (a *App) Filter(ctx context.Context) error {
	query, err := getSimpleText(a.reader, "Text query (empty for all)", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	docs := a.docs.Filter(query, tags)
	for i := range docs {
		printDocumentLine(&docs[i])
	}
	printlnFn(fmt.Sprintf("%d match(es)", len(docs)))
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id", os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.docs.Get(ctx, id)
	if err != nil {
		printError(err)
		return err
	}
	printDocument(doc)
	return nil
}

// New runs the create flow: title, body, tags, then one submit.
func (a *App) New(ctx context.Context) error {
	return a.editDraft(ctx, drafts.New(a.api))
}

// Edit loads an existing document into a draft and runs the same flow.
// A failed load leaves the flow immediately.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id", os.Stdout)
	if err != nil {
		return err
	}

	d := drafts.ForDocument(a.api, id)
	if err := d.Load(ctx); err != nil {
		printError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Editing %q (current tags: %s)", d.Title, strings.Join(d.Tags(), ", ")))
	return a.editDraft(ctx, d)
}

func (a *App) editDraft(ctx context.Context, d *drafts.Draft) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	if title != "" || d.ID() == "" {
		d.Title = title
	}

	content, err := GetMultiline(a.reader, "Content:", os.Stdout)
	if err != nil {
		return err
	}
	if content != "" || d.ID() == "" {
		d.Content = content
	}

	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		return err
	}
	for _, t := range tags {
		d.AddTag(t)
	}

	doc, err := d.Submit(ctx)
	if err != nil {
		printError(err)
		return err
	}

	// Keep the cache in step with what the server now holds.
	if err := a.docs.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "failed to refresh documents after save", "err", err)
	}

	printlnFn(fmt.Sprintf("Saved %s", doc.ID))
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.docs.Delete(ctx, id); err != nil {
		printError(err)
		return err
	}
	printlnFn("Deleted")
	return nil
}

// Summarize asks the backend to generate a summary for one document and
// prints the result.
func (a *App) Summarize(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id", os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.docs.Summarize(ctx, id)
	if err != nil {
		printError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Summary: %s", doc.Summary))
	return nil
}

// GenerateTags asks the backend to tag one document and prints the
// resulting tag set.
func (a *App) GenerateTags(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id", os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.docs.GenerateTags(ctx, id)
	if err != nil {
		printError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Tags: %s", strings.Join(doc.Tags, ", ")))
	return nil
}
