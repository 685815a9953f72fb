package suggest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildPrompt assembles the career-suggestion prompt around the completed
// course name and the user's stated preferences.
func buildPrompt(completedCourse string, userPreferences map[string]any) string {
	prefs, err := json.Marshal(userPreferences)
	if err != nil || userPreferences == nil {
		prefs = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are a career development AI that analyzes completed courses and provides personalized learning recommendations.\n\n")
	fmt.Fprintf(&b, "COMPLETED COURSE: %q\n", completedCourse)
	fmt.Fprintf(&b, "USER PREFERENCES: %s\n\n", prefs)
	b.WriteString("INSTRUCTIONS:\n")
	fmt.Fprintf(&b, "1. Analyze the specific skills and knowledge gained from %q\n", completedCourse)
	b.WriteString("2. Consider current industry trends and job market demands for this field\n")
	b.WriteString("3. Research real career opportunities and salary ranges for someone with these skills\n")
	fmt.Fprintf(&b, "4. Suggest specific, actionable next steps that build upon %q\n\n", completedCourse)
	b.WriteString("RESPONSE FORMAT - Return ONLY this exact JSON structure with NO additional text:\n\n")
	fmt.Fprintf(&b, `{
  "currentOpportunities": {
    "title": "What You Can Do Now With %[1]s",
    "items": ["...", "...", "..."]
  },
  "nextSteps": {
    "title": "Strategic Next Learning Steps",
    "items": [
      {"name": "...", "description": "...", "impact": "..."},
      {"name": "...", "description": "...", "impact": "..."}
    ]
  },
  "careerPaths": {
    "title": "Career Trajectories From %[1]s",
    "items": ["...", "...", "..."]
  }
}`, completedCourse)
	b.WriteString("\n\nREQUIREMENTS:\n")
	fmt.Fprintf(&b, "- All suggestions must be specific to %q - no generic advice\n", completedCourse)
	b.WriteString("- Include real salary ranges and timeframes where relevant\n")
	b.WriteString("- Make career paths progressive (junior -> senior -> leadership)\n")
	b.WriteString("- Ensure all JSON is valid and properly formatted\n")
	b.WriteString("- Be concrete and actionable, not vague or theoretical")

	return b.String()
}
