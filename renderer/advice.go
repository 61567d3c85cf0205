package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wealthflow"
	md "github.com/nao1215/markdown"
)

// AdviceMarkdown renders a diagnosis.
func AdviceMarkdown(a wealthflow.Advice) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Financial Health: %d/100", a.HealthScore))
	doc.PlainText(a.Summary)
	if len(a.ImmediateActions) > 0 {
		doc.H2("Immediate Actions")
		doc.BulletList(a.ImmediateActions...)
	}
	if a.StrategicAdvice != "" {
		doc.H2("Strategy")
		doc.PlainText(a.StrategicAdvice)
	}
	return doc.String()
}

// SavedAdvicesMarkdown renders the advice history, newest first.
func SavedAdvicesMarkdown(list []wealthflow.SavedAdvice) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Saved Advices")
	if len(list) == 0 {
		doc.PlainText("No saved advice.")
		return doc.String()
	}
	for _, a := range list {
		doc.H2(fmt.Sprintf("%s (score %d)", a.Title, a.Score))
		doc.PlainText(a.Content)
	}
	return doc.String()
}
