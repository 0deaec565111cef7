package assistant

import (
	"fmt"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

// CheckAttribution vérifie la complétude des crédits média :
// une attribution par image pour les Expo, un crédit de vignette pour les Now.
func CheckAttribution(sub *submission.Submission) []Warning {
	switch sub.PostType {
	case submission.TypeExpo:
		complete := 0
		for _, attr := range sub.ImageAttributions {
			if attr.Complete() {
				complete++
			}
		}
		shortfall := len(sub.Images) - complete
		if shortfall > 0 {
			return []Warning{newWarning(SourceCopyright, SeverityMedium,
				"Some images are missing a complete credit.",
				fmt.Sprintf("%d image(s) without credit", shortfall),
				[]string{"MISSING_CREDITS"}, false)}
		}
	case submission.TypeNow:
		if !sub.ThumbnailAttribution.Complete() {
			return []Warning{newWarning(SourceCopyright, SeverityMedium,
				"The thumbnail is missing a complete credit.",
				"thumbnail attribution incomplete",
				[]string{"MISSING_CREDITS"}, false)}
		}
	}
	return nil
}
