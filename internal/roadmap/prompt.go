package roadmap

import (
	"fmt"
	"strings"
)

const promptHeader = `CRITICAL: You MUST respond with ONLY valid JSON. No markdown, no explanations, no additional text.`

// buildPrompt assembles the generation prompt. The preference, skill level,
// and goal answers bias the resource mix and question difficulty.
func buildPrompt(in Input, milestoneCount int) string {
	var b strings.Builder

	b.WriteString(promptHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Generate a learning roadmap for: %q (Duration: %s)\n\n", in.Topic, in.Duration)
	fmt.Fprintf(&b, "User Profile: %s level, prefers %s, goal: %s\n\n", in.SkillLevel, in.Preference, in.Goal)

	b.WriteString("EXACT JSON FORMAT REQUIRED:\n")
	fmt.Fprintf(&b, `{
  "courseName": "Course title here",
  "duration": %q,
  "milestones": [
    {
      "title": "Milestone title",
      "order": 1,
      "resources": {
        "website": "High-quality website URL with description",
        "youtube": [
          {"title": "Exact video title", "channel": "Channel name", "url": "YouTube URL"}
        ],
        "additional": [
          {"title": "Resource title", "url": "URL", "type": "article"}
        ]
      },
      "quiz": [
        {
          "question": "Quiz question here?",
          "options": ["Option A", "Option B", "Option C", "Option D"],
          "correct": 0
        }
      ]
    }
  ]
}`, in.Duration)

	b.WriteString("\n\nREQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Exactly %d milestones\n", milestoneCount)
	b.WriteString("- Each milestone: 3-5 quiz questions\n")
	b.WriteString(resourceRules(in.Preference))
	b.WriteString(difficultyRules(in.SkillLevel))
	b.WriteString(goalRules(in.Goal))
	b.WriteString("- Real URLs only\n")
	b.WriteString("- Logical progression\n\n")
	b.WriteString("RESPOND WITH JSON ONLY. NO OTHER TEXT.")

	return b.String()
}

func resourceRules(preference string) string {
	switch preference {
	case "Videos":
		return "- Include 2-3 YouTube videos and 1 website/documentation link per milestone\n"
	case "Notes":
		return "- Include 2 websites/documentation links and 1 video per milestone\n"
	case "Interactive":
		return "- Include coding playgrounds, GitHub labs, and interactive tutorials\n"
	}
	return ""
}

func difficultyRules(skillLevel string) string {
	switch skillLevel {
	case "Beginner":
		return "- Use simple explanations and easier quiz questions\n- Focus on fundamentals and basic concepts\n"
	case "Advanced":
		return "- Include advanced documentation and complex tutorials\n- Create challenging quiz questions\n"
	}
	return ""
}

func goalRules(goal string) string {
	switch goal {
	case "Exam":
		return "- Create practice-style quiz questions similar to exam format\n- Focus on testable concepts\n"
	case "Project":
		return "- Include 1 small project idea or exercise per milestone\n- Focus on practical application\n"
	case "Placement":
		return "- Add interview-style questions and resources\n- Include real-world problem-solving scenarios\n"
	}
	return ""
}
