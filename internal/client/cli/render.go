package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kbcli/internal/client/models"
	"github.com/fatih/color"
)

var (
	titleColor    = color.New(color.FgCyan, color.Bold)
	tagColor      = color.New(color.FgYellow)
	questionColor = color.New(color.FgGreen, color.Bold)
	answerColor   = color.New(color.FgWhite)
	sourceColor   = color.New(color.FgBlue)
	errorColor    = color.New(color.FgRed)
)

func printError(err error) {
	errorColor.Printf("Error: %v\n", err)
}

func printDocumentLine(d *models.Document) {
	titleColor.Printf("%s  %s\n", d.ID, d.Title)
	if len(d.Tags) > 0 {
		tagColor.Printf("      [%s]\n", strings.Join(d.Tags, ", "))
	}
}

func printDocument(d *models.Document) {
	titleColor.Println(d.Title)
	fmt.Printf("id: %s  by: %s  updated: %s\n", d.ID, d.CreatedBy.Email, d.UpdatedAt.Format("2006-01-02 15:04"))
	if len(d.Tags) > 0 {
		tagColor.Printf("tags: %s\n", strings.Join(d.Tags, ", "))
	}
	if d.Summary != "" {
		fmt.Printf("summary: %s\n", d.Summary)
	}
	fmt.Println()
	fmt.Println(d.Content)
}

func printSearchResult(r *models.SearchResult) {
	if r.RelevanceScore > 0 {
		titleColor.Printf("%s  %s", r.ID, r.Title)
		fmt.Printf("  (%.2f)\n", r.RelevanceScore)
	} else {
		titleColor.Printf("%s  %s\n", r.ID, r.Title)
	}
	if len(r.Tags) > 0 {
		tagColor.Printf("      [%s]\n", strings.Join(r.Tags, ", "))
	}
}

func printMessage(m *models.Message) {
	switch m.Kind {
	case models.KindQuestion:
		questionColor.Printf("Q: %s\n", m.Text)
	default:
		answerColor.Printf("A: %s\n", m.Text)
		if len(m.Sources) > 0 {
			sourceColor.Printf("   sources: %s\n", strings.Join(m.Sources, ", "))
		}
	}
}
