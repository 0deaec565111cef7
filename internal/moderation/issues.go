package moderation

import (
	"fmt"
	"strings"
)

// IssueCode est une raison de rejet canonique sélectionnable par le
// modérateur, mappée vers un paragraphe type.
type IssueCode struct {
	Code     string `json:"code"`
	Label    string `json:"label"`
	Template string `json:"template"`
}

var issueCatalog = []IssueCode{
	{
		Code:     "ORIGINALITY",
		Label:    "Originality concerns",
		Template: "Parts of the submission closely match content that is already published. Please make sure the work is your own and clearly credit any material you build upon.",
	},
	{
		Code:     "MISSING_SOURCES",
		Label:    "Missing sources",
		Template: "The submission makes factual claims without citing sources. Please add references for statistics, quotes and research findings.",
	},
	{
		Code:     "MISSING_CREDITS",
		Label:    "Missing image credits",
		Template: "One or more images are missing a complete credit. Every image needs either an original-work marker, a custom credit line, or a source with an author name.",
	},
	{
		Code:     "SPELLING_AND_GRAMMAR",
		Label:    "Spelling and grammar",
		Template: "The text contains spelling or grammar mistakes that get in the way of reading. A careful proofreading pass should fix most of them.",
	},
	{
		Code:     "CLARITY_AND_STRUCTURE",
		Label:    "Clarity and structure",
		Template: "Some sections are hard to follow. Consider splitting long sentences and reorganizing the content so each paragraph carries one idea.",
	},
	{
		Code:     "OFF_TOPIC",
		Label:    "Off topic",
		Template: "The submission does not fit the scope of this section. Have a look at the submission guidelines for what belongs in each feed.",
	},
	{
		Code:     "INCOMPLETE_CONTENT",
		Label:    "Incomplete content",
		Template: "The submission feels unfinished. Please complete the missing parts before sending it back for review.",
	},
}

// IssueCatalog retourne le catalogue complet pour l'UI de décision.
func IssueCatalog() []IssueCode {
	return issueCatalog
}

func lookupIssue(code string) (IssueCode, bool) {
	for _, issue := range issueCatalog {
		if issue.Code == code {
			return issue, true
		}
	}
	return IssueCode{}, false
}

// ComposeRejection synthétise le texte de rejet : salutation avec le titre,
// une puce par code sélectionné, note libre optionnelle, formule de clôture.
// Le texte est persisté tel quel comme rejectionReason.
func ComposeRejection(title string, codes []string, note string) (string, error) {
	if len(codes) == 0 {
		return "", fmt.Errorf("au moins un code de rejet est requis")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi! Thank you for submitting %q.\n\n", title)
	b.WriteString("After review, we can't publish it in its current form:\n\n")
	for _, code := range codes {
		issue, ok := lookupIssue(code)
		if !ok {
			return "", fmt.Errorf("code de rejet inconnu : %s", code)
		}
		fmt.Fprintf(&b, "- %s\n", issue.Template)
	}
	if strings.TrimSpace(note) != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(note))
	}
	b.WriteString("\nPlease revise and resubmit.")
	return b.String(), nil
}
