package interpreter

import (
	"fmt"
	"strings"

	"github.com/creditlens/bureau-extract/constants"
)

func buildSystemPrompt() string {
	return strings.TrimSpace(fmt.Sprintf(`
You read Indian credit bureau reports (%s) and return one JSON object in the
exact schema provided. Rules:
- Amounts are plain numbers in rupees. Convert Indian digit grouping like
  7,50,000 to 750000. Missing amounts are 0.
- score is the bureau credit score, an integer between 300 and 900, or null
  when the report does not show one.
- Every credit account in the report becomes one entry in "loans"; "line" is
  a short one-line summary of that account (lender, product, status, key
  amounts).
- status must be one of Active, Closed, Settled, WrittenOff, Unknown.
- Dates stay exactly as printed; do not reformat them.
- Do not invent accounts, enquiries or amounts that are not in the text.
Return ONLY the JSON object, with no commentary.`,
		strings.Join(constants.BureauNames(), "/")))
}

func buildUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("REPORT TEXT:\n")
	b.WriteString(text)
	return b.String()
}
